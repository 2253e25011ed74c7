package handlers

import (
	"net/http"
	"strings"

	"blogAPI/internal/models"
)

func (h *Handlers) GetPostLikes(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	if _, err := h.PostRepo.GetByID(r.Context(), postID); err != nil {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	count, err := h.LikeRepo.CountByPost(r.Context(), postID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, map[string]int64{"likesCount": count}, http.StatusOK)
}

func (h *Handlers) LikePost(w http.ResponseWriter, r *http.Request) {
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

	like := &models.Like{
		PostID: postID,
		UserID: userID,
	}

	if err := h.LikeRepo.Create(r.Context(), like); err != nil {
		if strings.Contains(err.Error(), "уже лайкнут") {
			WriteError(w, "Пост уже лайкнут", http.StatusConflict)
		} else {
			WriteError(w, "Не удалось поставить лайк", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Лайк поставлен"}, http.StatusCreated)
}

func (h *Handlers) UnlikePost(w http.ResponseWriter, r *http.Request) {
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

	if err := h.LikeRepo.Delete(r.Context(), postID, userID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Лайк не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось убрать лайк", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Лайк убран"}, http.StatusOK)
}
