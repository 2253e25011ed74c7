package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogAPI/internal/models"
)

func (h *Handlers) GetPostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	// комментарии видны только у опубликованных постов
	if !post.StatusID.Valid || post.StatusID.Int64 != models.StatusPublishedID {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	comments, err := h.CommentRepo.ListByPost(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	WriteJSON(w, comments, http.StatusOK)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	comment := &models.Comment{
		Content:  req.Content,
		PostID:   postID,
		AuthorID: userID,
	}

	if err := h.CommentRepo.Create(r.Context(), comment); err != nil {
		WriteError(w, "Не удалось создать комментарий", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, comment, http.StatusCreated)
}

func (h *Handlers) UpdateComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	commentID, err := pathID(r, "commentID")
	if err != nil {
		WriteError(w, "Неверный ID комментария", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil || comment.PostID != postID {
		WriteError(w, "Комментарий не найден", http.StatusNotFound)
		return
	}

	if !canModify(role, userID, comment.AuthorID) {
		WriteError(w, "Нет прав для изменения этого комментария", http.StatusForbidden)
		return
	}

	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	comment.Content = req.Content

	if err := h.CommentRepo.Update(r.Context(), comment); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Комментарий не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось обновить комментарий", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, comment, http.StatusOK)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	commentID, err := pathID(r, "commentID")
	if err != nil {
		WriteError(w, "Неверный ID комментария", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	comment, err := h.CommentRepo.GetByID(r.Context(), commentID)
	if err != nil || comment.PostID != postID {
		WriteError(w, "Комментарий не найден", http.StatusNotFound)
		return
	}

	if !canModify(role, userID, comment.AuthorID) {
		WriteError(w, "Нет прав для удаления этого комментария", http.StatusForbidden)
		return
	}

	if err := h.CommentRepo.Delete(r.Context(), commentID); err != nil {
		WriteError(w, "Не удалось удалить комментарий", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Комментарий успешно удален"}, http.StatusOK)
}
