package handler

import (
	"net/http"

	"docvault/internal/httputil"
)

// HealthCheck reports liveness.
// GET /health
func HealthCheck(w http.ResponseWriter, _ *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
