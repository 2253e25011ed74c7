package handlers

import (
	"net/http"
	"time"
)

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"message": "Welcome to " + h.Cfg.ProjectName,
		"version": h.Cfg.Version,
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	WriteJSON(w, response, http.StatusOK)
}
