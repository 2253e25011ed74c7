package service

import (
	"context"
	"fmt"

	"blogAPI/internal/config"
	"blogAPI/internal/models"
	"blogAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	UpdateProfile(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) UserService {
	return &userService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// UpdateProfile обновляет только переданные поля, пустые значения не трогает
func (s *userService) UpdateProfile(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Username != "" && req.Username != user.Username {
		existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
		if err == nil && existing != nil {
			return nil, fmt.Errorf("username %s уже занят", req.Username)
		}
		user.Username = req.Username
	}

	if req.Email != "" && req.Email != user.Email {
		existing, err := s.userRepo.GetUserByEmail(ctx, req.Email)
		if err == nil && existing != nil {
			return nil, fmt.Errorf("email %s уже зарегистрирован", req.Email)
		}
		user.Email = req.Email
	}

	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("ошибка при хешировании пароля: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	return nil
}
