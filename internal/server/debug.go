package server

import (
	"encoding/json"
	"net/http"

	"cavesight/internal/engine"
)

// DebugHandler отдает внутреннее состояние сессии: флаги клеток, поля
// шума и запаха, сырые данные MapInfo. Только чтение.
type DebugHandler struct {
	Session *engine.Session
}

func NewDebugHandler(s *engine.Session) *DebugHandler {
	return &DebugHandler{Session: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/cave", h.handleCave)
	mux.HandleFunc("/debug/noise", h.handleNoise)
	mux.HandleFunc("/debug/scent", h.handleScent)
	mux.HandleFunc("/debug/view", h.handleView)
	mux.HandleFunc("/debug/turn", h.handleTurn)
}

// /debug/cave - сводка по уровню: флаги клеток и счетчики рельефа
func (h *DebugHandler) handleCave(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.Summary())
}

// /debug/noise - стоимость шума, построчно
func (h *DebugHandler) handleNoise(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.NoiseLayer())
}

// /debug/scent - возраст запаха, построчно
func (h *DebugHandler) handleScent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.ScentLayer())
}

// /debug/view - MapInfo всех клеток в обзоре
func (h *DebugHandler) handleView(w http.ResponseWriter, r *http.Request) {
	view := h.Session.View()
	if view == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, view)
}

// /debug/turn - статистика последнего хода
func (h *DebugHandler) handleTurn(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Session.Last())
}

func writeJSON(w http.ResponseWriter, data any) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой обзор отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
