package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MediaFilesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_files_stored_total",
			Help: "Total number of uploaded files written to the media store",
		},
		[]string{"kind"},
	)

	MediaCleanupFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_cleanup_failures_total",
			Help: "Total number of best-effort file deletions that failed",
		},
		[]string{"kind"},
	)

	MailDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_dispatched_total",
			Help: "Total number of outbound mails by transport and result",
		},
		[]string{"transport", "result"},
	)
)
