package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"blogAPI/internal/models"
	"blogAPI/internal/repository"
)

type PostResponse struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	ContentHTML string       `json:"contentHtml,omitempty"`
	AuthorID    int64        `json:"authorId"`
	StatusID    *int64       `json:"statusId"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	LikesCount  int64        `json:"likesCount"`
	Tags        []models.Tag `json:"tags"`
}

type PostWithLikeResponse struct {
	PostResponse
	IsLiked bool `json:"isLiked"`
}

type ImageResponse struct {
	ImageID   int64  `json:"imageId"`
	PostID    int64  `json:"postId"`
	ImageURL  string `json:"imageUrl"`
	FileName  string `json:"fileName"`
	FileSize  int64  `json:"fileSize"`
	MimeType  string `json:"mimeType"`
	CreatedAt string `json:"createdAt"`
}

func newPostResponse(post *models.Post, contentHTML string) PostResponse {
	var statusID *int64
	if post.StatusID.Valid {
		statusID = &post.StatusID.Int64
	}

	tags := post.Tags
	if tags == nil {
		tags = []models.Tag{}
	}

	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		ContentHTML: contentHTML,
		AuthorID:    post.AuthorID,
		StatusID:    statusID,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
		LikesCount:  post.LikesCount,
		Tags:        tags,
	}
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, role, _ := currentUser(r)
	page, limit := parsePagination(r)

	filter := repository.PostFilter{
		ViewerID:   userID,
		ViewerRole: role,
		Search:     r.URL.Query().Get("search"),
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

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title    string   `json:"title" validate:"required,max=200"`
		Content  string   `json:"content" validate:"required"`
		StatusID int64    `json:"statusId"`
		Tags     []string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные", http.StatusBadRequest)
		return
	}

	serviceReq := repository.CreatePostRequest{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		StatusID: req.StatusID,
		Tags:     req.Tags,
	}

	post, err := h.PostService.CreatePost(r.Context(), serviceReq)
	if err != nil {
		if strings.Contains(err.Error(), "статус") && strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Статус не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось создать пост", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, newPostResponse(post, ""), http.StatusCreated)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, role, _ := currentUser(r)

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	// скрытые посты выглядят как отсутствующие
	if !postVisible(post, userID, role) {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	contentHTML, err := h.PostService.RenderHTML(post.Content)
	if err != nil {
		log.Printf("Ошибка рендеринга поста %d: %v", post.ID, err)
	}

	WriteJSON(w, newPostResponse(post, contentHTML), http.StatusOK)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if !canModify(role, userID, post.AuthorID) {
		WriteError(w, "Нет прав для изменения этого поста", http.StatusForbidden)
		return
	}

	var req struct {
		Title    *string   `json:"title"`
		Content  *string   `json:"content"`
		StatusID *int64    `json:"statusId"`
		Tags     *[]string `json:"tags"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if req.Title != nil && (*req.Title == "" || len(*req.Title) > 200) {
		WriteError(w, "Неверный заголовок", http.StatusBadRequest)
		return
	}

	serviceReq := repository.UpdatePostRequest{
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		StatusID: req.StatusID,
		Tags:     req.Tags,
	}

	updated, err := h.PostService.UpdatePost(r.Context(), serviceReq)
	if err != nil {
		if strings.Contains(err.Error(), "статус") && strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Статус не найден", http.StatusNotFound)
		} else if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, "Не удалось обновить пост", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, newPostResponse(updated, ""), http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if !canModify(role, userID, post.AuthorID) {
		WriteError(w, "Нет прав для удаления этого поста", http.StatusForbidden)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), postID); err != nil {
		WriteError(w, "Не удалось удалить пост", http.StatusInternalServerError)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Пост успешно удален"}, http.StatusOK)
}

// GetPostWithLike возвращает пост вместе с флагом isLiked для текущего пользователя
func (h *Handlers) GetPostWithLike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, role, _ := currentUser(r)

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if !postVisible(post, userID, role) {
		WriteError(w, "Пост не найден", http.StatusNotFound)
		return
	}

	isLiked := false
	if userID != 0 {
		isLiked, err = h.LikeRepo.Exists(r.Context(), postID, userID)
		if err != nil {
			WriteError(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	response := PostWithLikeResponse{
		PostResponse: newPostResponse(post, ""),
		IsLiked:      isLiked,
	}

	WriteJSON(w, response, http.StatusOK)
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if !canModify(role, userID, post.AuthorID) {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
			h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	contentType := handler.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), postID, handler.Filename, file, handler.Size)
	if err != nil {
		WriteError(w, "Ошибка загрузки изображения", http.StatusInternalServerError)
		return
	}

	response := ImageResponse{
		ImageID:   image.ID,
		PostID:    image.PostID,
		ImageURL:  image.ImageURL,
		FileName:  handler.Filename,
		FileSize:  handler.Size,
		MimeType:  contentType,
		CreatedAt: image.CreatedAt.Format(time.RFC3339),
	}

	WriteJSON(w, response, http.StatusCreated)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		WriteError(w, "Неверный ID поста", http.StatusBadRequest)
		return
	}

	imageID, err := pathID(r, "imageID")
	if err != nil {
		WriteError(w, "Неверный ID изображения", http.StatusBadRequest)
		return
	}

	userID, role, ok := currentUser(r)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	post, err := h.PostRepo.GetByID(r.Context(), postID)
	if err != nil {
		if strings.Contains(err.Error(), "не найден") {
			WriteError(w, "Пост не найден", http.StatusNotFound)
		} else {
			WriteError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	if !canModify(role, userID, post.AuthorID) {
		WriteError(w, "Доступ запрещен", http.StatusForbidden)
		return
	}

	if err := h.PostService.DeleteImage(r.Context(), postID, imageID); err != nil {
		if strings.Contains(err.Error(), "не найдено") {
			WriteError(w, "Изображение не найдено", http.StatusNotFound)
		} else {
			WriteError(w, "Ошибка удаления изображения", http.StatusInternalServerError)
		}
		return
	}

	WriteJSON(w, MessageResponse{Message: "Изображение успешно удалено"}, http.StatusOK)
}
