package handlers

import (
	"net/http"
	"time"

	"github.com/xandys/eccbc-mcp/internal/mcp"
)

// Health reports liveness for probes and load balancers.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   mcp.ServerName,
	})
}
