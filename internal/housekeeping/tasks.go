// filepath: internal/housekeeping/tasks.go
package housekeeping

import (
	"context"
	"fmt"
	"time"

	"watchlist/internal/logging"
)

// Dependencies defines the required services for the housekeeping tasks.
type Dependencies struct {
	Sessions SessionPruner
}

// Report summarises a single housekeeping run.
type Report struct {
	SessionsDeleted int64
	Message         string
}

// RunOnce deletes every session that expired at or before now.
func RunOnce(ctx context.Context, deps Dependencies, now time.Time) (*Report, error) {
	deleted, err := deps.Sessions.DeleteExpiredSessions(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("could not prune expired sessions: %w", err)
	}

	report := &Report{SessionsDeleted: deleted}
	report.Message = fmt.Sprintf("Housekeeping complete. %d expired sessions deleted.", deleted)
	if deleted > 0 {
		logging.Log.Infof("Housekeeping: %s", report.Message)
	}
	return report, nil
}
