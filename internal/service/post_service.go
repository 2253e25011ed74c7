package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"

	"blogAPI/internal/config"
	"blogAPI/internal/models"
	"blogAPI/internal/repository"
	"blogAPI/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID int64) error
	RenderHTML(content string) (string, error)
	AddImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (*models.PostImage, error)
	DeleteImage(ctx context.Context, postID, imageID int64) error
}

type postService struct {
	postRepo   repository.PostRepository
	tagRepo    repository.TagRepository
	statusRepo repository.StatusRepository
	imageRepo  repository.ImageRepository
	storage    storage.Storage
	cfg        *config.Config
}

func NewPostService(
	postRepo repository.PostRepository,
	tagRepo repository.TagRepository,
	statusRepo repository.StatusRepository,
	imageRepo repository.ImageRepository,
	storage storage.Storage,
	cfg *config.Config,
) PostService {
	return &postService{
		postRepo:   postRepo,
		tagRepo:    tagRepo,
		statusRepo: statusRepo,
		imageRepo:  imageRepo,
		storage:    storage,
		cfg:        cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	statusID := req.StatusID
	if statusID == 0 {
		statusID = models.StatusDraftID
	}

	// status must exist before the post references it
	if _, err := p.statusRepo.GetByID(ctx, statusID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: req.AuthorID,
		StatusID: sql.NullInt64{Int64: statusID, Valid: true},
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if err := p.attachTags(ctx, post.ID, req.Tags); err != nil {
		return nil, err
	}

	return p.postRepo.GetByID(ctx, post.ID)
}

func (p *postService) UpdatePost(ctx context.Context, req repository.UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.StatusID != nil {
		if _, err := p.statusRepo.GetByID(ctx, *req.StatusID); err != nil {
			return nil, err
		}
		post.StatusID = sql.NullInt64{Int64: *req.StatusID, Valid: true}
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	if req.Tags != nil {
		if err := p.attachTags(ctx, post.ID, *req.Tags); err != nil {
			return nil, err
		}
	}

	return p.postRepo.GetByID(ctx, post.ID)
}

func (p *postService) DeletePost(ctx context.Context, postID int64) error {
	// объекты в MinIO каскадом не удалятся, чистим их до удаления поста
	images, err := p.imageRepo.ListByPost(ctx, postID)
	if err != nil {
		return err
	}

	for _, image := range images {
		if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
			log.Printf("Предупреждение: не удалось удалить объект %s: %v", image.ObjectName, err)
		}
	}

	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) AddImage(ctx context.Context, postID int64, fileName string, file io.Reader, size int64) (*models.PostImage, error) {
	objectName, imageURL, err := p.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки изображения в MinIO: %w", err)
	}

	image := &models.PostImage{
		PostID:     postID,
		ObjectName: objectName,
		ImageURL:   imageURL,
	}

	err = p.imageRepo.Create(ctx, image)
	if err != nil {
		p.storage.DeleteImage(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения изображения в БД: %w", err)
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, postID, imageID int64) error {
	image, err := p.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		return fmt.Errorf("изображение не найдено")
	}

	// изображение чужого поста недоступно, даже если его ID угадан
	if image.PostID != postID {
		return fmt.Errorf("изображение не найдено")
	}

	if err := p.storage.DeleteImage(ctx, image.ObjectName); err != nil {
		log.Printf("Предупреждение: не удалось удалить объект %s: %v", image.ObjectName, err)
	}

	if err := p.imageRepo.Delete(ctx, image.ID); err != nil {
		return fmt.Errorf("ошибка удаления из БД: %w", err)
	}

	return nil
}

// attachTags находит или создает теги по именам и заменяет ими набор тегов поста
func (p *postService) attachTags(ctx context.Context, postID int64, names []string) error {
	tagIDs := make([]int64, 0, len(names))
	for _, name := range names {
		tag, err := p.tagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	return p.postRepo.ReplaceTags(ctx, postID, tagIDs)
}
