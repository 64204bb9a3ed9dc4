package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// SubjectRepository определяет методы для работы с хранилищем предметов
type SubjectRepository interface {
	Create(subject *entity.Subject) error
	GetByID(id uint) (*entity.Subject, error)

	// GetAll возвращает все предметы, отсортированные по имени
	GetAll() ([]entity.Subject, error)

	Update(subject *entity.Subject) error
	Delete(id uint) error
}
