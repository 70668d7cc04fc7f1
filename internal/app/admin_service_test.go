package app

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/unihaven/backend/internal/domain/user"
	idb "github.com/unihaven/backend/internal/infra/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_SuspendUser_Timed(t *testing.T) {
	id := uuid.New()
	until := time.Now().Add(48 * time.Hour)
	var gotUntil sql.NullTime
	ur := &mockUserRepo{
		getByIDFunc: func(_ context.Context, gotID uuid.UUID) (*user.User, error) {
			assert.Equal(t, id, gotID)
			return &user.User{ID: id, Email: "wanjiku@students.uon.ac.ke"}, nil
		},
		suspendFunc: func(_ context.Context, _ uuid.UUID, u sql.NullTime) (*user.User, error) {
			gotUntil = u
			return &user.User{ID: id, IsSuspended: true, SuspendedUntil: u}, nil
		},
	}
	svc := NewAdminService(ur)

	suspended, err := svc.SuspendUser(context.Background(), id, &until)
	require.NoError(t, err)
	assert.True(t, suspended.IsSuspended)
	require.True(t, gotUntil.Valid)
	assert.Equal(t, until, gotUntil.Time)
}

func TestAdminService_SuspendUser_Indefinite(t *testing.T) {
	id := uuid.New()
	ur := &mockUserRepo{
		getByIDFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id}, nil
		},
		suspendFunc: func(_ context.Context, _ uuid.UUID, u sql.NullTime) (*user.User, error) {
			assert.False(t, u.Valid, "indefinite suspension must store NULL suspended_until")
			return &user.User{ID: id, IsSuspended: true}, nil
		},
	}
	svc := NewAdminService(ur)

	_, err := svc.SuspendUser(context.Background(), id, nil)
	require.NoError(t, err)
}

func TestAdminService_SuspendUser_AlreadySuspended(t *testing.T) {
	id := uuid.New()
	ur := &mockUserRepo{
		getByIDFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, IsSuspended: true}, nil
		},
	}
	svc := NewAdminService(ur)

	_, err := svc.SuspendUser(context.Background(), id, nil)
	assert.ErrorIs(t, err, ErrUserAlreadySuspended)
}

func TestAdminService_SuspendUser_UntilInPast(t *testing.T) {
	id := uuid.New()
	past := time.Now().Add(-time.Hour)
	ur := &mockUserRepo{
		getByIDFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id}, nil
		},
	}
	svc := NewAdminService(ur)

	_, err := svc.SuspendUser(context.Background(), id, &past)
	assert.ErrorIs(t, err, ErrSuspendUntilInPast)
}

func TestAdminService_UnsuspendUser(t *testing.T) {
	id := uuid.New()
	ur := &mockUserRepo{
		getByIDFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, IsSuspended: true}, nil
		},
		unsuspendFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, IsSuspended: false}, nil
		},
	}
	svc := NewAdminService(ur)

	u, err := svc.UnsuspendUser(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, u.IsSuspended)
}

func TestAdminService_UnsuspendUser_NotSuspended(t *testing.T) {
	id := uuid.New()
	ur := &mockUserRepo{
		getByIDFunc: func(context.Context, uuid.UUID) (*user.User, error) {
			return &user.User{ID: id, IsSuspended: false}, nil
		},
	}
	svc := NewAdminService(ur)

	_, err := svc.UnsuspendUser(context.Background(), id)
	assert.ErrorIs(t, err, ErrUserNotSuspended)
}

func TestAdminService_SuspendUser_NotFound(t *testing.T) {
	ur := &mockUserRepo{}
	svc := NewAdminService(ur)

	_, err := svc.SuspendUser(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, idb.ErrUserNotFound)
}
