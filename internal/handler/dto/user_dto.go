package dto

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// UserResponse представляет публичные данные пользователя
type UserResponse struct {
	UserID    uint      `json:"user_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse представляет результат регистрации или входа
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// NewUserResponse создает DTO для пользователя
func NewUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// NewAuthResponse создает DTO для ответа аутентификации
func NewAuthResponse(user *entity.User, token string) *AuthResponse {
	return &AuthResponse{
		Token: token,
		User:  NewUserResponse(user),
	}
}
