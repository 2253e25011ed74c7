package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogAPI/internal/models"
)

func (h *Handlers) GetStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.StatusRepo.List(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, statuses, http.StatusOK)
}

func (h *Handlers) CreateStatus(w http.ResponseWriter, r *http.Request) {
	_, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if role != models.RoleAdmin {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	var req struct {
		Name        string `json:"name" validate:"required,min=1,max=50"`
		Description string `json:"description" validate:"max=255"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	status := &models.Status{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := h.StatusRepo.Create(r.Context(), status); err != nil {
		if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Статус уже существует", http.StatusConflict)
		} else {
			WriteError(w, "Не удалось создать статус", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, status, http.StatusCreated)
}
