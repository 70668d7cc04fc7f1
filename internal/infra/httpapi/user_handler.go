package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/unihaven/backend/internal/app"
	"github.com/unihaven/backend/internal/domain/user"
	idb "github.com/unihaven/backend/internal/infra/database"

	"github.com/google/uuid"
)

// AdminService is the slice of the admin application service the user
// handler depends on.
type AdminService interface {
	SuspendUser(ctx context.Context, id uuid.UUID, until *time.Time) (*user.User, error)
	UnsuspendUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type UserHandler struct {
	admin    AdminService
	userRepo user.Repository
}

func NewUserHandler(admin AdminService, userRepo user.Repository) *UserHandler {
	return &UserHandler{admin: admin, userRepo: userRepo}
}

type userResponse struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username,omitempty"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	IsSuspended    bool       `json:"isSuspended"`
	SuspendedUntil *time.Time `json:"suspendedUntil,omitempty"`
}

func toUserResponse(u *user.User) userResponse {
	resp := userResponse{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		IsSuspended: u.IsSuspended,
	}
	if u.Username.Valid {
		resp.Username = u.Username.String
	}
	if u.SuspendedUntil.Valid {
		until := u.SuspendedUntil.Time
		resp.SuspendedUntil = &until
	}
	return resp
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	u, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(u))
}

type suspendRequest struct {
	// SuspendedUntil omitted or null means an indefinite suspension.
	SuspendedUntil *time.Time `json:"suspendedUntil"`
}

// Suspend handles POST /api/admin/users/{id}/suspend.
func (h *UserHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req suspendRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	u, err := h.admin.SuspendUser(r.Context(), id, req.SuspendedUntil)
	switch {
	case errors.Is(err, idb.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, app.ErrUserAlreadySuspended):
		writeError(w, http.StatusConflict, "user is already suspended")
	case errors.Is(err, app.ErrSuspendUntilInPast):
		writeError(w, http.StatusBadRequest, "suspendedUntil must be in the future")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to suspend user")
	default:
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

// Unsuspend handles POST /api/admin/users/{id}/unsuspend.
func (h *UserHandler) Unsuspend(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.admin.UnsuspendUser(r.Context(), id)
	switch {
	case errors.Is(err, idb.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, app.ErrUserNotSuspended):
		writeError(w, http.StatusConflict, "user is not suspended")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to unsuspend user")
	default:
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}
