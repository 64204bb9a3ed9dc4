package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// SubjectRepo реализует repository.SubjectRepository
type SubjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo создает новый репозиторий предметов
func NewSubjectRepo(db *gorm.DB) *SubjectRepo {
	return &SubjectRepo{db: db}
}

// Create создает новый предмет; повторное имя отклоняется уникальным индексом
func (r *SubjectRepo) Create(subject *entity.Subject) error {
	err := r.db.Create(subject).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: subject %q already exists", apperrors.ErrConflict, subject.Name)
	}
	return err
}

// GetByID возвращает предмет по ID
func (r *SubjectRepo) GetByID(id uint) (*entity.Subject, error) {
	var subject entity.Subject
	err := r.db.First(&subject, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &subject, nil
}

// GetAll возвращает все предметы, отсортированные по имени
func (r *SubjectRepo) GetAll() ([]entity.Subject, error) {
	var subjects []entity.Subject
	err := r.db.Order("name").Find(&subjects).Error
	return subjects, err
}

// Update обновляет предмет
func (r *SubjectRepo) Update(subject *entity.Subject) error {
	err := r.db.Save(subject).Error
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: subject %q already exists", apperrors.ErrConflict, subject.Name)
	}
	return err
}

// Delete удаляет предмет
func (r *SubjectRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Subject{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
