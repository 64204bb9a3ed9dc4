package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
	"github.com/yourusername/quizhub-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа пользователей
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Register регистрирует нового пользователя и возвращает его вместе с токеном
func (s *AuthService) Register(fullName, email, password string) (*entity.User, string, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalizeEmail(email)

	if fullName == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: full_name, email and password are required", apperrors.ErrValidation)
	}

	// Проверяем, существует ли пользователь с таким email
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", fmt.Errorf("%w: user with this email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}

	user := &entity.User{
		FullName: fullName,
		Email:    email,
		Password: password, // Хешируется хуком BeforeSave
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login проверяет учетные данные и возвращает пользователя с токеном
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, что именно неверно
			return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !user.CheckPassword(password) {
		return nil, "", fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// normalizeEmail приводит email к каноническому виду
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
