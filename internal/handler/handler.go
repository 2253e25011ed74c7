package handlers

import (
	"blogAPI/internal/config"
	"blogAPI/internal/repository"
	"blogAPI/internal/service"

	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	AuthService service.AuthService
	UserService service.UserService
	PostService service.PostService
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
	TagRepo     repository.TagRepository
	StatusRepo  repository.StatusRepository
	ImageRepo   repository.ImageRepository
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		UserService: service.User,
		PostService: service.Post,
		UserRepo:    repo.User,
		PostRepo:    repo.Post,
		CommentRepo: repo.Comment,
		LikeRepo:    repo.Like,
		TagRepo:     repo.Tag,
		StatusRepo:  repo.Status,
		ImageRepo:   repo.Image,
		Cfg:         config,
		Validate:    validator.New(),
	}
}
