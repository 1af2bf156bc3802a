package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/linesmerrill/human-rights-mis-api/models"
)

// New creates a new mux router with the health and metrics routes. Every
// request passes through the metrics middleware.
func New() *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	r.Handle("/metrics", MetricsHandler()).Methods("GET")

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{Alive: true})
	w.Write(b)
}
