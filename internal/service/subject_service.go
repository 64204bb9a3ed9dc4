package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// SubjectService предоставляет методы для работы с предметами
type SubjectService struct {
	subjectRepo repository.SubjectRepository
}

// NewSubjectService создает новый сервис предметов
func NewSubjectService(subjectRepo repository.SubjectRepository) *SubjectService {
	return &SubjectService{subjectRepo: subjectRepo}
}

// CreateSubject создает новый предмет
func (s *SubjectService) CreateSubject(name string) (*entity.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperrors.ErrValidation)
	}

	subject := &entity.Subject{Name: name}
	if err := s.subjectRepo.Create(subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}
	return subject, nil
}

// GetSubjectByID возвращает предмет по ID
func (s *SubjectService) GetSubjectByID(id uint) (*entity.Subject, error) {
	return s.subjectRepo.GetByID(id)
}

// ListSubjects возвращает все предметы, отсортированные по имени
func (s *SubjectService) ListSubjects() ([]entity.Subject, error) {
	return s.subjectRepo.GetAll()
}

// UpdateSubject переименовывает предмет
func (s *SubjectService) UpdateSubject(id uint, name string) (*entity.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: subject name is required", apperrors.ErrValidation)
	}

	subject, err := s.subjectRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	subject.Name = name
	if err := s.subjectRepo.Update(subject); err != nil {
		return nil, fmt.Errorf("failed to update subject: %w", err)
	}
	return subject, nil
}

// DeleteSubject удаляет предмет
func (s *SubjectService) DeleteSubject(id uint) error {
	return s.subjectRepo.Delete(id)
}
