package http

import (
	"encoding/json"
	"net/http"
	"time"
)

var serverStart = time.Now()

// ReadyHandler reports readiness along with process start time and uptime.
// The default behavior is always ready.
func ReadyHandler(w http.ResponseWriter, r *http.Request) {
	var (
		now = time.Now()
		up  = now.Sub(serverStart)
	)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ready",
		"started": serverStart.UTC().Format(time.RFC3339),
		"up":      up.String(),
	})
}
