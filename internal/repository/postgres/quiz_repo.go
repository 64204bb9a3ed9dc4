package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions сохраняет викторину с деревом вопросов и вариантов атомарно.
// Вопросы вставляются в порядке входного слайса, варианты — в порядке внутри вопроса;
// любая ошибка на любом шаге откатывает транзакцию целиком.
func (r *QuizRepo) CreateWithQuestions(quiz *entity.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		questions := quiz.Questions
		quiz.Questions = nil

		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("ошибка сохранения викторины: %w", err)
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
			// Create с вложенным слайсом Options вставляет вопрос и его варианты
			if err := tx.Create(&questions[i]).Error; err != nil {
				return fmt.Errorf("ошибка сохранения вопроса #%d: %w", i+1, err)
			}
		}

		quiz.Questions = questions
		return nil
	})
}

// ReplaceWithQuestions обновляет метаданные викторины и полностью заменяет ее
// дерево вопросов (delete-then-reinsert) в одной транзакции
func (r *QuizRepo) ReplaceWithQuestions(quiz *entity.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing entity.Quiz
		if err := tx.Select("id").First(&existing, quiz.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"title":        quiz.Title,
			"description":  quiz.Description,
			"subject_id":   quiz.SubjectID,
			"is_scheduled": quiz.IsScheduled,
			"time_limit":   quiz.TimeLimit,
			"total_score":  quiz.TotalScore,
			"start_at":     quiz.StartAt,
		}
		if err := tx.Model(&entity.Quiz{}).Where("id = ?", quiz.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("ошибка обновления викторины: %w", err)
		}

		// Варианты каскадируются за вопросами на уровне схемы
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("ошибка удаления старых вопросов: %w", err)
		}

		for i := range quiz.Questions {
			quiz.Questions[i].ID = 0
			quiz.Questions[i].QuizID = quiz.ID
			for j := range quiz.Questions[i].Options {
				quiz.Questions[i].Options[j].ID = 0
				quiz.Questions[i].Options[j].QuestionID = 0
			}
			if err := tx.Create(&quiz.Questions[i]).Error; err != nil {
				return fmt.Errorf("ошибка сохранения вопроса #%d: %w", i+1, err)
			}
		}

		return nil
	})
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами, вариантами,
// предметом и создателем
func (r *QuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id") }).
		Preload("Subject").
		Preload("Creator").
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetByAccessCode возвращает викторину по коду доступа вместе с вопросами
// (варианты ответов не загружаются)
func (r *QuizRepo) GetByAccessCode(accessCode string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		Where("access_code = ?", accessCode).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает викторины с опциональными фильтрами, новые первыми
func (r *QuizRepo) List(filters repository.QuizFilters) ([]entity.Quiz, error) {
	query := r.db.Preload("Subject").Preload("Creator")

	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.CreatorID != nil {
		query = query.Where("creator_id = ?", *filters.CreatorID)
	}

	var quizzes []entity.Quiz
	err := query.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// ListExcludingCreator возвращает викторины всех, кроме указанного создателя
func (r *QuizRepo) ListExcludingCreator(creatorID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Subject").Preload("Creator").
		Where("creator_id != ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListByCreator возвращает викторины создателя, новые первыми
func (r *QuizRepo) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Preload("Subject").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// ListBySubject возвращает викторины предмета, отсортированные по времени начала
func (r *QuizRepo) ListBySubject(subjectID uint) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("subject_id = ?", subjectID).
		Order("start_at").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete удаляет викторину; вопросы и варианты каскадируются схемой
func (r *QuizRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Quiz{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
