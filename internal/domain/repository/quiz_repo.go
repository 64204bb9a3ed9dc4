package repository

import (
	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// QuizFilters определяет опциональные фильтры для списков викторин
type QuizFilters struct {
	SubjectID *uint
	CreatorID *uint
}

// QuizRepository определяет методы для работы с хранилищем викторин
type QuizRepository interface {
	// CreateWithQuestions сохраняет викторину вместе с вложенными вопросами и
	// вариантами ответов в одной транзакции, сохраняя порядок входных данных.
	// Любая ошибка откатывает всю запись.
	CreateWithQuestions(quiz *entity.Quiz) error

	// ReplaceWithQuestions обновляет метаданные викторины и полностью заменяет
	// дерево вопросов/вариантов (delete-then-reinsert) в одной транзакции.
	// Возвращает apperrors.ErrNotFound, если викторины нет.
	ReplaceWithQuestions(quiz *entity.Quiz) error

	// GetByID возвращает викторину без вложенных данных
	GetByID(id uint) (*entity.Quiz, error)

	// GetWithQuestions возвращает викторину с вопросами, вариантами,
	// предметом и создателем
	GetWithQuestions(id uint) (*entity.Quiz, error)

	// GetByAccessCode возвращает викторину по коду доступа вместе с вопросами
	// (без вариантов ответов)
	GetByAccessCode(accessCode string) (*entity.Quiz, error)

	// List возвращает викторины с опциональными фильтрами по предмету и
	// создателю, новые первыми
	List(filters QuizFilters) ([]entity.Quiz, error)

	// ListExcludingCreator возвращает викторины всех, кроме указанного
	// создателя, новые первыми
	ListExcludingCreator(creatorID uint) ([]entity.Quiz, error)

	// ListByCreator возвращает викторины создателя, новые первыми
	ListByCreator(creatorID uint) ([]entity.Quiz, error)

	// ListBySubject возвращает викторины предмета, отсортированные по
	// запланированному началу
	ListBySubject(subjectID uint) ([]entity.Quiz, error)

	// Delete удаляет викторину; вопросы и варианты каскадируются на уровне
	// хранилища. Возвращает apperrors.ErrNotFound, если викторины нет.
	Delete(id uint) error
}
