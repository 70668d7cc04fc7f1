package httpapi

import (
	"net/http"

	"github.com/unihaven/backend/internal/app"

	"github.com/sirupsen/logrus"
)

// ReconcileHandler exposes a manually-invokable equivalent of one
// scheduled reconciliation pass, for out-of-band triggering and testing.
type ReconcileHandler struct {
	reconciler app.Reconciler
	logger     *logrus.Logger
}

func NewReconcileHandler(reconciler app.Reconciler, logger *logrus.Logger) *ReconcileHandler {
	return &ReconcileHandler{reconciler: reconciler, logger: logger}
}

type reconcileResponse struct {
	Expired      []app.AdRef `json:"expired"`
	ExpiringSoon []app.AdRef `json:"expiringSoon"`
}

// Trigger handles POST /api/admin/reconcile.
func (h *ReconcileHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reconciler.RunPass(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Manual reconciliation pass failed")
		writeError(w, http.StatusInternalServerError, "reconciliation pass failed")
		return
	}
	writeJSON(w, http.StatusOK, reconcileResponse{
		Expired:      summary.Expired,
		ExpiringSoon: summary.ExpiringSoon,
	})
}
