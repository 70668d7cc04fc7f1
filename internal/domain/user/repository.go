package user

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Repository defines the operations for persisting and retrieving user accounts.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Suspend marks the user suspended. A NULL until means the suspension
	// is indefinite and will never be lifted automatically.
	Suspend(ctx context.Context, id uuid.UUID, until sql.NullTime) (*User, error)

	// Unsuspend lifts a suspension unconditionally (administrative action).
	Unsuspend(ctx context.Context, id uuid.UUID) (*User, error)

	// ListSuspensionsDue returns users whose timed suspension has elapsed
	// as of asOf. Indefinitely suspended users are never returned.
	ListSuspensionsDue(ctx context.Context, asOf time.Time) ([]*User, error)

	// LiftSuspension clears the suspension only if it is still due at asOf
	// (single-row conditional update). It returns ErrUserNotFound from the
	// database package when the user is gone or the predicate no longer
	// holds, which callers treat as a silent skip.
	LiftSuspension(ctx context.Context, id uuid.UUID, asOf time.Time) (*User, error)
}
