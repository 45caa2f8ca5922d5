package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, user *models.User, plainPassword string) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error)
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	repo  repositories.UserRepository
	email EmailService
}

func NewUserService(repo repositories.UserRepository, email EmailService) UserService {
	return &userService{repo: repo, email: email}
}

func (s *userService) Register(ctx context.Context, user *models.User, plainPassword string) error {
	if user.Email == "" || plainPassword == "" {
		return fmt.Errorf("email and password are required")
	}
	if user.Timezone == "" {
		user.Timezone = "UTC"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	if s.email != nil {
		if err := s.email.SendWelcomeEmail(user.Email, user.DisplayName); err != nil {
			// registration already succeeded, the mail is best effort
			log.Printf("[user][register] welcome email failed for %q: %v", user.Email, err)
		}
	}
	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *userService) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(ctx, userID, token, expiresAt)
}

func (s *userService) RotateRefresh(ctx context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.User, error) {
	return s.repo.RotateRefresh(ctx, oldToken, newToken, newExpiresAt)
}

func (s *userService) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(ctx, token)
}
