package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/unihaven/backend/internal/domain/advertiser"
	idb "github.com/unihaven/backend/internal/infra/database"

	"github.com/google/uuid"
)

type AdvertiserHandler struct {
	repo advertiser.Repository
}

func NewAdvertiserHandler(repo advertiser.Repository) *AdvertiserHandler {
	return &AdvertiserHandler{repo: repo}
}

type advertiserResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	BusinessName string     `json:"businessName"`
	NationalID   string     `json:"nationalId"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func toAdvertiserResponse(a *advertiser.Advertiser) advertiserResponse {
	resp := advertiserResponse{
		ID:           a.ID,
		BusinessName: a.BusinessName,
		NationalID:   a.NationalID,
		CreatedAt:    a.CreatedAt,
	}
	if a.UserID.Valid {
		id := a.UserID.UUID
		resp.UserID = &id
	}
	if a.Email.Valid {
		resp.Email = a.Email.String
	}
	if a.Phone.Valid {
		resp.Phone = a.Phone.String
	}
	return resp
}

type createAdvertiserRequest struct {
	UserID       *uuid.UUID `json:"userId"`
	BusinessName string     `json:"businessName"`
	NationalID   string     `json:"nationalId"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
}

// Create handles POST /api/advertisers.
func (h *AdvertiserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdvertiserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.BusinessName == "" {
		writeError(w, http.StatusBadRequest, "businessName is required")
		return
	}
	if req.NationalID == "" {
		writeError(w, http.StatusBadRequest, "nationalId is required")
		return
	}

	a := &advertiser.Advertiser{
		BusinessName: req.BusinessName,
		NationalID:   req.NationalID,
	}
	if req.UserID != nil {
		a.UserID = uuid.NullUUID{UUID: *req.UserID, Valid: true}
	}
	if req.Email != "" {
		a.Email = sql.NullString{String: req.Email, Valid: true}
	}
	if req.Phone != "" {
		a.Phone = sql.NullString{String: req.Phone, Valid: true}
	}

	if err := h.repo.Create(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create advertiser")
		return
	}
	writeJSON(w, http.StatusCreated, toAdvertiserResponse(a))
}

// Get handles GET /api/advertisers/{id}.
func (h *AdvertiserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid advertiser id")
		return
	}
	a, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrAdvertiserNotFound) {
			writeError(w, http.StatusNotFound, "advertiser not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch advertiser")
		return
	}
	writeJSON(w, http.StatusOK, toAdvertiserResponse(a))
}

// List handles GET /api/advertisers.
func (h *AdvertiserHandler) List(w http.ResponseWriter, r *http.Request) {
	advertisers, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list advertisers")
		return
	}
	resp := make([]advertiserResponse, 0, len(advertisers))
	for _, a := range advertisers {
		resp = append(resp, toAdvertiserResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/advertisers/{id}.
func (h *AdvertiserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid advertiser id")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, idb.ErrAdvertiserNotFound) {
			writeError(w, http.StatusNotFound, "advertiser not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete advertiser")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
