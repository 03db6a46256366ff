package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

var readyGate atomic.Bool

func init() {
	readyGate.Store(true)
}

// SetReady flips the readiness gate. Shutdown sets it to false so load
// balancers drain the instance before the listener closes.
func SetReady(ready bool) {
	readyGate.Store(ready)
}

// Handler exposes HTTP handlers for health endpoints. The service keeps no
// external state, so readiness reduces to the shutdown gate.
type Handler struct{}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !readyGate.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "shutting_down"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
