package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	queue  *RequestQueue
	logger *slog.Logger
}

func NewHandler(queue *RequestQueue) *Handler {
	return &Handler{
		queue:  queue,
		logger: slog.Default().With("component", "analytics-handler"),
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.queue.Stats()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		h.logger.Error("failed to write analytics response", "error", err)
	}
}
