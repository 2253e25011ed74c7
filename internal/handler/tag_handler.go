package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogAPI/internal/models"
	"blogAPI/internal/repository"
)

func (h *Handlers) GetTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagRepo.List(r.Context())
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	WriteJSON(w, tags, http.StatusOK)
}

func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	_, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name string `json:"name" validate:"required,min=1,max=50"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	tag := &models.Tag{Name: req.Name}

	if err := h.TagRepo.Create(r.Context(), tag); err != nil {
		if strings.Contains(err.Error(), "уже существует") {
			WriteError(w, "Тег уже существует", http.StatusConflict)
		} else {
			WriteError(w, "Не удалось создать тег", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, tag, http.StatusCreated)
}

// GetPostsByTag возвращает посты с указанным тегом, фильтр по статусу доступен
// только админам и авторам
func (h *Handlers) GetPostsByTag(w http.ResponseWriter, r *http.Request) {
	tagID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID тега", http.StatusBadRequest)
		return
	}

	if _, err := h.TagRepo.GetByID(r.Context(), tagID); err != nil {
		WriteError(w, "Тег не найден", http.StatusNotFound)
		return
	}

	userID, role, _ := currentUser(r)
	page, limit := parsePagination(r)

	statusName := r.URL.Query().Get("status")
	if statusName != "" {
		if role != models.RoleAdmin && role != models.RoleAuthor {
			WriteError(w, "Нет прав для фильтрации по статусу", http.StatusForbidden)
			return
		}
	}

	filter := repository.PostFilter{
		ViewerID:   userID,
		ViewerRole: role,
		TagID:      tagID,
		StatusName: statusName,
		Page:       page,
		Limit:      limit,
	}

	posts, total, err := h.PostRepo.List(r.Context(), filter)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	items := make([]PostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, newPostResponse(&posts[i], ""))
	}

	WriteJSON(w, newPaginatedResponse(items, total, page, limit), http.StatusOK)
}
