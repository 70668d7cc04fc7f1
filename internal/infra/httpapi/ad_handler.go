package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/unihaven/backend/internal/domain/ad"
	"github.com/unihaven/backend/internal/domain/advertiser"
	idb "github.com/unihaven/backend/internal/infra/database"

	"github.com/google/uuid"
)

type AdHandler struct {
	adRepo         ad.Repository
	advertiserRepo advertiser.Repository
	reminderWindow time.Duration
}

func NewAdHandler(adRepo ad.Repository, advertiserRepo advertiser.Repository, reminderWindow time.Duration) *AdHandler {
	if reminderWindow <= 0 {
		reminderWindow = ad.DefaultReminderWindow
	}
	return &AdHandler{adRepo: adRepo, advertiserRepo: advertiserRepo, reminderWindow: reminderWindow}
}

type adResponse struct {
	ID                 uuid.UUID  `json:"id"`
	AdvertiserID       uuid.UUID  `json:"advertiserId"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Campus             string     `json:"campus,omitempty"`
	MediaURL           string     `json:"mediaUrl,omitempty"`
	StartDate          time.Time  `json:"startDate"`
	EndDate            time.Time  `json:"endDate"`
	Active             bool       `json:"active"`
	Status             ad.State   `json:"status"`
	LastReminderSentAt *time.Time `json:"lastReminderSentAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func (h *AdHandler) toAdResponse(a *ad.Ad) adResponse {
	resp := adResponse{
		ID:           a.ID,
		AdvertiserID: a.AdvertiserID,
		Title:        a.Title,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Active:       a.Active,
		Status:       a.StateAt(time.Now(), h.reminderWindow),
		CreatedAt:    a.CreatedAt,
	}
	if a.Description.Valid {
		resp.Description = a.Description.String
	}
	if a.Campus.Valid {
		resp.Campus = a.Campus.String
	}
	if a.MediaURL.Valid {
		resp.MediaURL = a.MediaURL.String
	}
	if a.LastReminderSentAt.Valid {
		at := a.LastReminderSentAt.Time
		resp.LastReminderSentAt = &at
	}
	return resp
}

type createAdRequest struct {
	AdvertiserID uuid.UUID  `json:"advertiserId"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Campus       string     `json:"campus"`
	MediaURL     string     `json:"mediaUrl"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
}

// Create handles POST /api/ads. Ads are created active with a required
// end date; the reminder timestamp starts unset.
func (h *AdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AdvertiserID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "advertiserId is required")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.EndDate == nil {
		writeError(w, http.StatusBadRequest, "endDate is required")
		return
	}

	if _, err := h.advertiserRepo.GetByID(r.Context(), req.AdvertiserID); err != nil {
		if errors.Is(err, idb.ErrAdvertiserNotFound) {
			writeError(w, http.StatusNotFound, "advertiser not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to verify advertiser")
		return
	}

	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}

	a := &ad.Ad{
		AdvertiserID: req.AdvertiserID,
		Title:        req.Title,
		StartDate:    start,
		EndDate:      *req.EndDate,
		Active:       true,
	}
	if req.Description != "" {
		a.Description = sql.NullString{String: req.Description, Valid: true}
	}
	if req.Campus != "" {
		a.Campus = sql.NullString{String: req.Campus, Valid: true}
	}
	if req.MediaURL != "" {
		a.MediaURL = sql.NullString{String: req.MediaURL, Valid: true}
	}

	if err := h.adRepo.Create(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create ad")
		return
	}
	writeJSON(w, http.StatusCreated, h.toAdResponse(a))
}

// Get handles GET /api/ads/{id}.
func (h *AdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	a, err := h.adRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrAdNotFound) {
			writeError(w, http.StatusNotFound, "ad not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch ad")
		return
	}
	writeJSON(w, http.StatusOK, h.toAdResponse(a))
}

// ListByAdvertiser handles GET /api/advertisers/{id}/ads.
func (h *AdHandler) ListByAdvertiser(w http.ResponseWriter, r *http.Request) {
	advertiserID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid advertiser id")
		return
	}
	ads, err := h.adRepo.ListByAdvertiser(r.Context(), advertiserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list ads")
		return
	}
	resp := make([]adResponse, 0, len(ads))
	for _, a := range ads {
		resp = append(resp, h.toAdResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/ads/{id}.
func (h *AdHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid ad id")
		return
	}
	if err := h.adRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, idb.ErrAdNotFound) {
			writeError(w, http.StatusNotFound, "ad not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete ad")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
