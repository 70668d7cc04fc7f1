package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/unihaven/backend/internal/app"
	"github.com/unihaven/backend/internal/domain/user"
	idb "github.com/unihaven/backend/internal/infra/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdminService struct {
	suspendFunc   func(ctx context.Context, id uuid.UUID, until *time.Time) (*user.User, error)
	unsuspendFunc func(ctx context.Context, id uuid.UUID) (*user.User, error)
}

func (m *mockAdminService) SuspendUser(ctx context.Context, id uuid.UUID, until *time.Time) (*user.User, error) {
	if m.suspendFunc != nil {
		return m.suspendFunc(ctx, id, until)
	}
	return nil, idb.ErrUserNotFound
}

func (m *mockAdminService) UnsuspendUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.unsuspendFunc != nil {
		return m.unsuspendFunc(ctx, id)
	}
	return nil, idb.ErrUserNotFound
}

func TestUserHandler_Suspend_WithEndDate(t *testing.T) {
	id := uuid.New()
	until := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	var gotUntil *time.Time
	admin := &mockAdminService{
		suspendFunc: func(_ context.Context, gotID uuid.UUID, u *time.Time) (*user.User, error) {
			assert.Equal(t, id, gotID)
			gotUntil = u
			return &user.User{ID: id, FullName: "Wanjiku Kamau", Email: "wanjiku@students.uon.ac.ke", IsSuspended: true}, nil
		},
	}
	h := NewUserHandler(admin, stubUserRepo{})

	body := `{"suspendedUntil":"` + until.Format(time.RFC3339) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+id.String()+"/suspend", strings.NewReader(body))
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	h.Suspend(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, gotUntil)
	assert.True(t, gotUntil.Equal(until))

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsSuspended)
}

func TestUserHandler_Suspend_NoBodyMeansIndefinite(t *testing.T) {
	id := uuid.New()
	called := false
	admin := &mockAdminService{
		suspendFunc: func(_ context.Context, _ uuid.UUID, until *time.Time) (*user.User, error) {
			called = true
			assert.Nil(t, until, "missing body must mean an indefinite suspension")
			return &user.User{ID: id, IsSuspended: true}, nil
		},
	}
	h := NewUserHandler(admin, stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+id.String()+"/suspend", nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	h.Suspend(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestUserHandler_Suspend_AlreadySuspended(t *testing.T) {
	id := uuid.New()
	admin := &mockAdminService{
		suspendFunc: func(context.Context, uuid.UUID, *time.Time) (*user.User, error) {
			return nil, app.ErrUserAlreadySuspended
		},
	}
	h := NewUserHandler(admin, stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+id.String()+"/suspend", nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	h.Suspend(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUserHandler_Unsuspend_NotFound(t *testing.T) {
	id := uuid.New()
	h := NewUserHandler(&mockAdminService{}, stubUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+id.String()+"/unsuspend", nil)
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()
	h.Unsuspend(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	h := NewUserHandler(&mockAdminService{}, stubUserRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/nope", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
