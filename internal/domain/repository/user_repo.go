package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с хранилищем пользователей
type UserRepository interface {
	// Create создает нового пользователя
	Create(user *entity.User) error

	// GetByID возвращает пользователя по ID
	GetByID(id uint) (*entity.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(email string) (*entity.User, error)
}
