package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/localnerve/singletea-api/internal/metrics"
	sendmail "github.com/localnerve/singletea-api/internal/mail"
	"github.com/localnerve/singletea-api/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//go:embed templates/*.html
var templateFS embed.FS

var enquiryTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	userEnquirySubject  = "Thank You for Your Franchise Enquiry"
	adminEnquirySubject = "New Franchise Enquiry"
)

// Enquiry is a franchise enquiry from the contact form
type Enquiry struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
}

// EnquiryNotifier mails a confirmation to the enquirer and a summary to the admin
type EnquiryNotifier struct {
	mailer sendmail.Mailer
	from   string
	admin  string
	log    *zap.Logger
}

// NewEnquiryNotifier sends from the given address; admin defaults to from
func NewEnquiryNotifier(mailer sendmail.Mailer, from, admin string, log *zap.Logger) *EnquiryNotifier {
	if admin == "" {
		admin = from
	}
	return &EnquiryNotifier{mailer: mailer, from: from, admin: admin, log: log}
}

// Submit validates the enquiry and sends both messages concurrently
func (n *EnquiryNotifier) Submit(ctx context.Context, e Enquiry) error {
	e = e.trimmed()
	if e.Name == "" || e.Location == "" || e.Mobile == "" || e.Email == "" {
		return types.NewValidationError("All required fields must be provided")
	}
	if addr, err := mail.ParseAddress(e.Email); err != nil || addr.Address != e.Email {
		return types.NewValidationError("Email address is invalid")
	}

	userHTML, err := render("enquiry_user.html", e)
	if err != nil {
		return types.NewServerError(err)
	}
	adminHTML, err := render("enquiry_admin.html", e)
	if err != nil {
		return types.NewServerError(err)
	}

	messages := []sendmail.Message{
		{From: n.from, To: e.Email, Subject: userEnquirySubject, HTML: userHTML},
		{From: n.from, To: n.admin, Subject: adminEnquirySubject, HTML: adminHTML},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, msg := range messages {
		g.Go(func() error {
			if err := n.mailer.Send(gctx, msg); err != nil {
				metrics.MailDispatched.WithLabelValues(n.mailer.Name(), "error").Inc()
				return fmt.Errorf("send to %s: %w", msg.To, err)
			}
			metrics.MailDispatched.WithLabelValues(n.mailer.Name(), "ok").Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		n.log.Error("enquiry delivery failed", zap.String("transport", n.mailer.Name()), zap.Error(err))
		return types.NewError(types.DeliveryError, "Server error, please try again later", err)
	}

	n.log.Info("enquiry emails sent", zap.String("location", e.Location))
	return nil
}

func (e Enquiry) trimmed() Enquiry {
	return Enquiry{
		Name:     strings.TrimSpace(e.Name),
		Location: strings.TrimSpace(e.Location),
		Mobile:   strings.TrimSpace(e.Mobile),
		Email:    strings.TrimSpace(e.Email),
		Date:     strings.TrimSpace(e.Date),
		Time:     strings.TrimSpace(e.Time),
	}
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := enquiryTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
