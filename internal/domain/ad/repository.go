package ad

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the operations for persisting and retrieving ads.
//
// MarkExpired and MarkReminderSent are predicate-guarded single-row
// updates: the WHERE clause re-checks the transition condition so that
// concurrent passes cannot apply the same transition twice. Both return
// ErrAdNotFound from the database package when the row is gone or the
// predicate no longer holds.
type Repository interface {
	Create(ctx context.Context, a *Ad) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ad, error)
	ListByAdvertiser(ctx context.Context, advertiserID uuid.UUID) ([]*Ad, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListActiveEndingBy returns active ads with EndDate <= cutoff, i.e.
	// every ad that could need an expiry or reminder transition this pass.
	ListActiveEndingBy(ctx context.Context, cutoff time.Time) ([]*Ad, error)

	MarkExpired(ctx context.Context, id uuid.UUID, asOf time.Time) (*Ad, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, asOf time.Time, throttle time.Duration) (*Ad, error)
}
