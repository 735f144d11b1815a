// filepath: internal/housekeeping/interfaces.go
package housekeeping

import (
	"context"
	"time"
)

// SessionPruner defines the storage methods required by the housekeeping service.
// This decouples the housekeeping logic from the concrete database implementation.
type SessionPruner interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
