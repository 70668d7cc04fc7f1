package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvertiserHandler_Create_Success(t *testing.T) {
	h := NewAdvertiserHandler(&stubAdvertiserRepo{})

	body := `{"businessName":"Sunrise Hostels Ltd","nationalId":"A1234567","email":"ads@sunrise.co.ke"}`
	req := httptest.NewRequest(http.MethodPost, "/api/advertisers", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp advertiserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, "Sunrise Hostels Ltd", resp.BusinessName)
	assert.Equal(t, "ads@sunrise.co.ke", resp.Email)
	assert.Nil(t, resp.UserID)
}

func TestAdvertiserHandler_Create_BusinessNameRequired(t *testing.T) {
	h := NewAdvertiserHandler(&stubAdvertiserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/advertisers", strings.NewReader(`{"nationalId":"A1234567"}`))
	w := httptest.NewRecorder()
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "businessName")
}

func TestAdvertiserHandler_Get_NotFound(t *testing.T) {
	h := NewAdvertiserHandler(&stubAdvertiserRepo{})

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/advertisers/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdvertiserHandler_Delete_InvalidID(t *testing.T) {
	h := NewAdvertiserHandler(&stubAdvertiserRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/advertisers/nope", nil)
	req.SetPathValue("id", "nope")
	w := httptest.NewRecorder()
	h.Delete(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
