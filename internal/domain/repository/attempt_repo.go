package repository

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками и ответами участников
type AttemptRepository interface {
	// InsertOrGet вставляет новую попытку; при нарушении уникальности
	// (quiz_id, user_id) загружает существующую запись в attempt.
	// Возвращает true, если попытка была создана этим вызовом.
	InsertOrGet(attempt *entity.Attempt) (bool, error)

	// GetByID возвращает попытку без вложенных данных
	GetByID(id uint) (*entity.Attempt, error)

	// GetWithQuiz возвращает попытку вместе с викториной, её вопросами и
	// вариантами ответов
	GetWithQuiz(id uint) (*entity.Attempt, error)

	// ListByUser возвращает попытки участника с данными викторин, новые первыми
	ListByUser(userID uint) ([]entity.Attempt, error)

	// ListByQuiz возвращает попытки по викторине с данными участников
	ListByQuiz(quizID uint) ([]entity.Attempt, error)

	// GetAnswers возвращает сохраненные ответы попытки
	GetAnswers(attemptID uint) ([]entity.AttemptAnswer, error)

	// FinalizeWithAnswers атомарно завершает попытку: записывает итоговый счет
	// и время окончания (только если попытка еще не завершена) и делает upsert
	// ответов по (attempt_id, question_id) в той же транзакции.
	// Возвращает ErrAttemptAlreadySubmitted, если попытка уже была завершена.
	FinalizeWithAnswers(attemptID uint, score int, finishedAt time.Time, answers []entity.AttemptAnswer) error
}
