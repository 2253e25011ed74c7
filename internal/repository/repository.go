package repository

import (
	"context"

	"blogAPI/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID int64) error
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
}

// PostFilter описывает условия выборки постов с учетом правил видимости
type PostFilter struct {
	ViewerID   int64
	ViewerRole string
	AuthorID   int64
	TagID      int64
	StatusName string
	Search     string
	Page       int
	Limit      int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]models.Post, int, error)
	ListLikedBy(ctx context.Context, userID int64, page, limit int) ([]models.Post, int, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID int64) error
	ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	ListByAuthor(ctx context.Context, authorID int64, page, limit int) ([]models.Comment, int, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID int64) error
}

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, postID, userID int64) error
	CountByPost(ctx context.Context, postID int64) (int64, error)
	Exists(ctx context.Context, postID, userID int64) (bool, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	GetByID(ctx context.Context, tagID int64) (*models.Tag, error)
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]models.Tag, error)
}

type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	GetByID(ctx context.Context, statusID int64) (*models.Status, error)
	List(ctx context.Context) ([]models.Status, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PostImage) error
	GetByID(ctx context.Context, imageID int64) (*models.PostImage, error)
	ListByPost(ctx context.Context, postID int64) ([]models.PostImage, error)
	Delete(ctx context.Context, imageID int64) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Comment CommentRepository
	Like    LikeRepository
	Tag     TagRepository
	Status  StatusRepository
	Image   ImageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Like:    NewLikeRepository(db),
		Tag:     NewTagRepository(db),
		Status:  NewStatusRepository(db),
		Image:   NewImageRepository(db),
	}
}
