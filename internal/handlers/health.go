package handlers

import (
	"context"
	"log"
	"net/http"
	"time"
)

// Home answers GET /.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("AIH backend running"))
}

// Health pings every configured store in order and answers 503 naming the
// first one that is down.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	for _, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			log.Printf("health check %s failed: %v", check.Name, err)
			http.Error(w, check.Name+" unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("OK"))
}
