package handlers

import (
	"net/http"
	"strconv"
	"time"

	"blogAPI/internal/models"

	"github.com/gorilla/mux"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// currentUser достает пользователя из контекста, заполненного AuthMiddleware
func currentUser(r *http.Request) (int64, string, bool) {
	userID, ok := r.Context().Value("userID").(int64)
	if !ok {
		return 0, "", false
	}
	role, _ := r.Context().Value("role").(string)
	return userID, role, true
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

// canModify: админ может все, остальные только свои ресурсы
func canModify(role string, viewerID, ownerID int64) bool {
	if role == models.RoleAdmin {
		return true
	}
	return viewerID == ownerID
}

// postVisible: опубликованные посты видны всем, скрытые только автору и админу
func postVisible(post *models.Post, viewerID int64, role string) bool {
	if post.StatusID.Valid && post.StatusID.Int64 == models.StatusPublishedID {
		return true
	}
	if viewerID == 0 {
		return false
	}
	if role == models.RoleAdmin {
		return true
	}
	return post.AuthorID == viewerID
}
