// filepath: internal/audit/logger_auditor.go
package audit

import (
	"context"

	"watchlist/internal/logging"
	"watchlist/internal/services"

	"github.com/sirupsen/logrus"
)

// Ensure LoggerAuditor implements services.Auditor
var _ services.Auditor = (*LoggerAuditor)(nil)

// AnonymousActor is the actor recorded for events without a logged in user.
const AnonymousActor = "anonymous"

// LoggerAuditor writes audit events to a logrus logger.
type LoggerAuditor struct {
	enabled bool
	log     *logrus.Logger
}

// NewLoggerAuditor creates a LoggerAuditor writing to the application log.
func NewLoggerAuditor(enabled bool) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, log: logging.Log}
}

// NewLoggerAuditorWith creates a LoggerAuditor writing to log.
func NewLoggerAuditorWith(enabled bool, log *logrus.Logger) *LoggerAuditor {
	return &LoggerAuditor{enabled: enabled, log: log}
}

// Log records an event using logrus if auditing is enabled.
func (a *LoggerAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	if !a.enabled {
		return
	}
	if actor == "" {
		actor = AnonymousActor
	}

	fields := logrus.Fields{
		"audit_action":   action,
		"audit_actor":    actor,
		"audit_resource": resource,
	}
	for k, v := range details {
		fields["detail."+k] = v
	}

	// Fixed message so audit lines are easy to grep.
	a.log.WithContext(ctx).WithFields(fields).Info("AUDIT EVENT")
}
