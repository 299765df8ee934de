package server

import (
	"encoding/json"
	"net/http"

	"dicedeck-server/internal/engine"

	"github.com/go-chi/chi/v5"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(r chi.Router) {
	r.Get("/state", h.handleState)
	r.Get("/replay", h.handleReplay)
}

// /debug/state - текущий снимок партии
func (h *DebugHandler) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Service.State())
}

// /debug/replay - записанная лента команд
func (h *DebugHandler) handleReplay(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.Service.Recording())
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
