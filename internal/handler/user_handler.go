package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"blogAPI/internal/repository"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		WriteError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	WriteJSON(w, newUserResponse(user), http.StatusOK)
}

func (h *Handlers) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Username string `json:"username" validate:"omitempty,min=3,max=50"`
		Email    string `json:"email" validate:"omitempty,email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	if req.Email != "" {
		patternEmail := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
		matched, err := regexp.MatchString(patternEmail, req.Email)
		if err != nil || !matched {
			WriteError(w, "Неверный формат email", http.StatusBadRequest)
			return
		}
	}

	if req.Password != "" && !validatePassword(req.Password) {
		WriteError(w, "Пароль должен быть не менее 8 символов и содержать заглавные, строчные буквы и цифры", http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdateUserRequest{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.UserService.UpdateProfile(r.Context(), serviceReq)
	if err != nil {
		if strings.Contains(err.Error(), "уже занят") || strings.Contains(err.Error(), "уже зарегистрирован") {
			WriteError(w, err.Error(), http.StatusBadRequest)
		} else if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось обновить профиль", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, newUserResponse(user), http.StatusOK)
}

// DeleteCurrentUser удаляет аккаунт, посты и лайки уходят каскадом на уровне БД
func (h *Handlers) DeleteCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), userID); err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось удалить пользователя", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, map[string]string{"message": "Пользователь удален"}, http.StatusOK)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID пользователя", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetUserByID(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пользователь не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, newUserResponse(user), http.StatusOK)
}

// GetMyPosts возвращает все посты текущего пользователя независимо от статуса
func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	page, limit := parsePagination(r)

	filter := repository.PostFilter{
		ViewerID:   userID,
		ViewerRole: role,
		AuthorID:   userID,
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

func (h *Handlers) GetMyComments(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	page, limit := parsePagination(r)

	comments, total, err := h.CommentRepo.ListByAuthor(r.Context(), userID, page, limit)
	if err != nil {
		WriteError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	WriteJSON(w, newPaginatedResponse(comments, total, page, limit), http.StatusOK)
}

func (h *Handlers) GetMyLikes(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	page, limit := parsePagination(r)

	posts, total, err := h.PostRepo.ListLikedBy(r.Context(), userID, page, limit)
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
