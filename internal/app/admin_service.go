package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/unihaven/backend/internal/domain/user"

	"github.com/google/uuid"
)

// Custom application-level errors for admin service
var ErrUserAlreadySuspended = fmt.Errorf("user is already suspended")
var ErrUserNotSuspended = fmt.Errorf("user is not suspended")
var ErrSuspendUntilInPast = fmt.Errorf("suspension end must be in the future")

// AdminService implements the administrative actions that produce the
// suspension state the reconciler consumes.
type AdminService struct {
	userRepo user.Repository
}

func NewAdminService(ur user.Repository) *AdminService {
	return &AdminService{userRepo: ur}
}

// SuspendUser suspends an account. A nil until means an indefinite
// suspension, which only an explicit administrative unsuspension lifts.
func (s *AdminService) SuspendUser(ctx context.Context, id uuid.UUID, until *time.Time) (*user.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target.IsSuspended {
		return target, ErrUserAlreadySuspended
	}

	var nullUntil sql.NullTime
	if until != nil {
		if !until.After(time.Now()) {
			return nil, ErrSuspendUntilInPast
		}
		nullUntil = sql.NullTime{Time: *until, Valid: true}
	}

	suspended, err := s.userRepo.Suspend(ctx, id, nullUntil)
	if err != nil {
		return nil, fmt.Errorf("failed to suspend user: %w", err)
	}
	return suspended, nil
}

// UnsuspendUser lifts a suspension regardless of its end date.
func (s *AdminService) UnsuspendUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !target.IsSuspended {
		return target, ErrUserNotSuspended
	}

	unsuspended, err := s.userRepo.Unsuspend(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to unsuspend user: %w", err)
	}
	return unsuspended, nil
}
