package httpapi

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Reconcile  *ReconcileHandler
	User       *UserHandler
	Advertiser *AdvertiserHandler
	Ad         *AdHandler
}

// NewRouter wires up the API. Everything except the health check sits
// behind the operator bearer token.
func NewRouter(h Handlers, adminToken string, logger *logrus.Logger) http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/admin/reconcile", h.Reconcile.Trigger)
	api.HandleFunc("POST /api/admin/users/{id}/suspend", h.User.Suspend)
	api.HandleFunc("POST /api/admin/users/{id}/unsuspend", h.User.Unsuspend)
	api.HandleFunc("GET /api/users/{id}", h.User.Get)
	api.HandleFunc("POST /api/advertisers", h.Advertiser.Create)
	api.HandleFunc("GET /api/advertisers", h.Advertiser.List)
	api.HandleFunc("GET /api/advertisers/{id}", h.Advertiser.Get)
	api.HandleFunc("DELETE /api/advertisers/{id}", h.Advertiser.Delete)
	api.HandleFunc("GET /api/advertisers/{id}/ads", h.Ad.ListByAdvertiser)
	api.HandleFunc("POST /api/ads", h.Ad.Create)
	api.HandleFunc("GET /api/ads/{id}", h.Ad.Get)
	api.HandleFunc("DELETE /api/ads/{id}", h.Ad.Delete)

	root := http.NewServeMux()
	root.HandleFunc("GET /api/health", h.Health.Health)
	root.Handle("/api/", BearerAuth(adminToken, api))

	return RequestLogger(logger, root)
}
