package services

import (
	"context"
	"fmt"
	"time"

	"github.com/localnerve/singletea-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Media        string            `json:"media"`
	Redis        string            `json:"redis,omitempty"`
	Mail         string            `json:"mail,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// Healthy reports whether every checked dependency is ok
func (r HealthCheckResult) Healthy() bool {
	return r.Status == "healthy"
}

// Pinger is anything that can check its own connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker checks the service dependencies. Redis and SMTPAddr are optional.
type HealthChecker struct {
	DB       *gorm.DB
	DBType   string
	Media    interface{ Writable() error }
	Redis    Pinger
	SMTPAddr string
	Log      *zap.Logger
}

// Check performs a health check of every configured dependency
func (h *HealthChecker) Check(ctx context.Context) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	fail := func(component, state string, err error) {
		result.Status = "unhealthy"
		result.Details[component+"_error"] = err.Error()
		msg := fmt.Sprintf("%s %s: %v", component, state, err)
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
		h.Log.Warn("health check failed", zap.String("component", component), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if sqlDB, err := h.DB.DB(); err != nil {
		result.Database = "error"
		fail("database", "connection error", err)
	} else if err := sqlDB.PingContext(ctx); err != nil {
		result.Database = "unreachable"
		fail("database", "ping failed", err)
	} else {
		result.Database = "ok"
		result.Details["database_type"] = h.DBType
	}

	if err := h.Media.Writable(); err != nil {
		result.Media = "unwritable"
		fail("media", "check failed", err)
	} else {
		result.Media = "ok"
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(ctx); err != nil {
			result.Redis = "unreachable"
			fail("redis", "ping failed", err)
		} else {
			result.Redis = "ok"
		}
	}

	if h.SMTPAddr != "" {
		if err := utils.PingAddress(h.SMTPAddr, 1500*time.Millisecond); err != nil {
			result.Mail = "unreachable"
			fail("mail", "ping failed", err)
		} else {
			result.Mail = "ok"
		}
	}

	return result
}
