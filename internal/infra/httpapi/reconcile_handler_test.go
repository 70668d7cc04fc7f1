package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/unihaven/backend/internal/app"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReconciler struct {
	runPassFunc func(ctx context.Context) (*app.PassSummary, error)
}

func (m *mockReconciler) RunPass(ctx context.Context) (*app.PassSummary, error) {
	if m.runPassFunc != nil {
		return m.runPassFunc(ctx)
	}
	return &app.PassSummary{Expired: []app.AdRef{}, ExpiringSoon: []app.AdRef{}}, nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestReconcileHandler_Trigger(t *testing.T) {
	expiredID := uuid.New()
	soonID := uuid.New()
	rec := &mockReconciler{
		runPassFunc: func(context.Context) (*app.PassSummary, error) {
			return &app.PassSummary{
				Unsuspended:  2,
				Expired:      []app.AdRef{{ID: expiredID, Title: "Old Banner"}},
				ExpiringSoon: []app.AdRef{{ID: soonID, Title: "Ending Soon"}},
			}, nil
		},
	}
	h := NewReconcileHandler(rec, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reconcile", nil)
	w := httptest.NewRecorder()
	h.Trigger(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Expired      []app.AdRef `json:"expired"`
		ExpiringSoon []app.AdRef `json:"expiringSoon"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Expired, 1)
	assert.Equal(t, expiredID, resp.Expired[0].ID)
	assert.Equal(t, "Old Banner", resp.Expired[0].Title)
	require.Len(t, resp.ExpiringSoon, 1)
	assert.Equal(t, "Ending Soon", resp.ExpiringSoon[0].Title)
}

func TestReconcileHandler_Trigger_EmptyListsNotNull(t *testing.T) {
	h := NewReconcileHandler(&mockReconciler{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reconcile", nil)
	w := httptest.NewRecorder()
	h.Trigger(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"expired":[],"expiringSoon":[]}`, w.Body.String())
}

func TestReconcileHandler_Trigger_PassError(t *testing.T) {
	rec := &mockReconciler{
		runPassFunc: func(context.Context) (*app.PassSummary, error) {
			return &app.PassSummary{}, fmt.Errorf("database unreachable")
		},
	}
	h := NewReconcileHandler(rec, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reconcile", nil)
	w := httptest.NewRecorder()
	h.Trigger(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// No internal detail leaks to the caller.
	assert.NotContains(t, w.Body.String(), "database unreachable")
}
