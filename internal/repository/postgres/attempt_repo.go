package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// InsertOrGet вставляет попытку; уникальный индекс idx_attempts_quiz_user
// превращает конкурентный или повторный join в идемпотентный: при 23505
// загружается и возвращается существующая запись.
func (r *AttemptRepo) InsertOrGet(attempt *entity.Attempt) (bool, error) {
	err := r.db.Create(attempt).Error
	if err == nil {
		return true, nil
	}
	if !isUniqueViolation(err) {
		return false, fmt.Errorf("ошибка создания попытки: %w", err)
	}

	var existing entity.Attempt
	findErr := r.db.Where("quiz_id = ? AND user_id = ?", attempt.QuizID, attempt.UserID).
		First(&existing).Error
	if findErr != nil {
		return false, fmt.Errorf("попытка существует, но не найдена: %w", findErr)
	}
	*attempt = existing
	return false, nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id uint) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetWithQuiz возвращает попытку вместе с викториной, вопросами и вариантами
func (r *AttemptRepo) GetWithQuiz(id uint) (*entity.Attempt, error) {
	var attempt entity.Attempt
	err := r.db.
		Preload("Quiz").
		Preload("Quiz.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.id") }).
		Preload("Quiz.Questions.Options", func(db *gorm.DB) *gorm.DB { return db.Order("options.id") }).
		First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// ListByUser возвращает попытки участника с данными викторин, новые первыми
func (r *AttemptRepo) ListByUser(userID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Preload("Quiz").
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// ListByQuiz возвращает попытки по викторине с данными участников
func (r *AttemptRepo) ListByQuiz(quizID uint) ([]entity.Attempt, error) {
	var attempts []entity.Attempt
	err := r.db.Preload("User").
		Where("quiz_id = ?", quizID).
		Order("started_at").
		Find(&attempts).Error
	return attempts, err
}

// GetAnswers возвращает сохраненные ответы попытки
func (r *AttemptRepo) GetAnswers(attemptID uint) ([]entity.AttemptAnswer, error) {
	var answers []entity.AttemptAnswer
	err := r.db.Where("attempt_id = ?", attemptID).
		Order("question_id").
		Find(&answers).Error
	return answers, err
}

// FinalizeWithAnswers завершает попытку и сохраняет ответы атомарно.
// Условный UPDATE (finished_at IS NULL) делает завершение однократным:
// конкурентный повторный submit получает 0 затронутых строк и
// ErrAttemptAlreadySubmitted, ранее записанные счет и время не меняются.
func (r *AttemptRepo) FinalizeWithAnswers(attemptID uint, score int, finishedAt time.Time, answers []entity.AttemptAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Attempt{}).
			Where("id = ? AND finished_at IS NULL", attemptID).
			Updates(map[string]interface{}{
				"score":       score,
				"finished_at": finishedAt,
				"is_active":   false,
			})
		if result.Error != nil {
			return fmt.Errorf("ошибка завершения попытки #%d: %w", attemptID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: attempt #%d", repository.ErrAttemptAlreadySubmitted, attemptID)
		}

		for i := range answers {
			answers[i].AttemptID = attemptID
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"option_id", "updated_at"}),
			}).Create(&answers[i]).Error
			if err != nil {
				return fmt.Errorf("ошибка сохранения ответа на вопрос #%d: %w", answers[i].QuestionID, err)
			}
		}

		return nil
	})
}
