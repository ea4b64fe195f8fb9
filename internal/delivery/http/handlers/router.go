package handlers

import (
	"net/http"

	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-trade-order-service/internal/delivery/http/middleware"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the order API under /api/orders behind caller
// resolution, plus the public /metrics and /healthz endpoints.
func NewRouter(
	orderHandler *OrderHandler,
	healthHandler *HealthHandler,
	resolver middleware.CallerResolver,
	gatherer prometheus.Gatherer,
	observer middleware.RequestObserver,
) (*mux.Router, error) {
	requestID, err := middleware.RequestID()
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(requestID, middleware.Recover, middleware.AccessLog(observer))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.Handle("/healthz", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api/orders").Subrouter()
	api.Use(middleware.Authenticate(resolver))

	api.HandleFunc("", orderHandler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("", orderHandler.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/{id}", orderHandler.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/{id}/status", orderHandler.UpdateOrderStatus).Methods(http.MethodPatch)
	api.HandleFunc("/{userId}/order-count", orderHandler.GetOrderCount).Methods(http.MethodGet)
	api.HandleFunc("/{userId}/recent-orders", orderHandler.GetRecentOrders).Methods(http.MethodGet)

	return r, nil
}
