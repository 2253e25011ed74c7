package service

import (
	"blogAPI/internal/config"
	"blogAPI/internal/repository"
	"blogAPI/internal/storage"
)

type Service struct {
	Auth AuthService
	User UserService
	Post PostService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth: NewAuthService(rep.User, cfg),
		User: NewUserService(rep.User, cfg),
		Post: NewPostService(rep.Post, rep.Tag, rep.Status, rep.Image, storage, cfg),
	}
}
