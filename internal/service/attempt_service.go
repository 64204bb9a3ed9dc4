package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// AttemptService управляет жизненным циклом попыток: присоединение по коду
// доступа, отправка ответов с подсчетом баллов и чтение результатов
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	quizRepo    repository.QuizRepository
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		quizRepo:    quizRepo,
	}
}

// JoinResult — результат присоединения к викторине
type JoinResult struct {
	Attempt *entity.Attempt
	Quiz    *entity.Quiz
	Created bool
}

// Join присоединяет участника к викторине по коду доступа.
// Операция идемпотентна: повторный вызов возвращает существующую попытку
// (Created=false), гонки между параллельными вызовами разрешает уникальный
// индекс (quiz_id, user_id).
func (s *AttemptService) Join(userID uint, accessCode string) (*JoinResult, error) {
	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return nil, fmt.Errorf("%w: access code is required", apperrors.ErrValidation)
	}

	quiz, err := s.quizRepo.GetByAccessCode(accessCode)
	if err != nil {
		return nil, err
	}

	attempt := &entity.Attempt{
		QuizID:    quiz.ID,
		UserID:    userID,
		IsActive:  true,
		StartedAt: time.Now(),
	}

	created, err := s.attemptRepo.InsertOrGet(attempt)
	if err != nil {
		log.Printf("[AttemptService] Ошибка присоединения к викторине #%d: %v", quiz.ID, err)
		return nil, fmt.Errorf("failed to join quiz: %w", err)
	}

	return &JoinResult{Attempt: attempt, Quiz: quiz, Created: created}, nil
}

// AnswerInput — выбранный вариант ответа на вопрос при отправке
type AnswerInput struct {
	QuestionID uint
	OptionID   uint
}

// SubmitResult — итог завершенной попытки
type SubmitResult struct {
	AttemptID  uint
	QuizID     uint
	Score      int
	TotalScore int
	FinishedAt time.Time
}

// Submit завершает попытку: проверяет принадлежность вариантов вопросам,
// считает счет и атомарно фиксирует результат. Повторная отправка запрещена.
func (s *AttemptService) Submit(userID, attemptID uint, answers []AnswerInput) (*SubmitResult, error) {
	attempt, err := s.attemptRepo.GetWithQuiz(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, fmt.Errorf("%w: attempt belongs to another user", apperrors.ErrForbidden)
	}
	if attempt.IsSubmitted() {
		return nil, fmt.Errorf("%w: attempt already submitted", apperrors.ErrConflict)
	}
	if attempt.Quiz == nil {
		return nil, fmt.Errorf("quiz for attempt #%d not loaded", attemptID)
	}
	quiz := attempt.Quiz

	// Валидация всего набора до каких-либо записей: частичных сохранений нет
	score := 0
	records := make([]entity.AttemptAnswer, 0, len(answers))
	seen := make(map[uint]bool, len(answers))
	for _, a := range answers {
		if seen[a.QuestionID] {
			return nil, fmt.Errorf("%w: duplicate answer for question #%d", apperrors.ErrValidation, a.QuestionID)
		}
		seen[a.QuestionID] = true

		question, ok := quiz.QuestionByID(a.QuestionID)
		if !ok {
			return nil, fmt.Errorf("%w: question #%d does not belong to quiz #%d", apperrors.ErrValidation, a.QuestionID, quiz.ID)
		}
		option, ok := question.OptionByID(a.OptionID)
		if !ok {
			return nil, fmt.Errorf("%w: option #%d does not belong to question #%d", apperrors.ErrValidation, a.OptionID, a.QuestionID)
		}
		if option.IsCorrect {
			score += question.Points
		}

		optionID := a.OptionID
		records = append(records, entity.AttemptAnswer{
			AttemptID:  attemptID,
			QuestionID: a.QuestionID,
			OptionID:   &optionID,
		})
	}

	finishedAt := time.Now()
	if err := s.attemptRepo.FinalizeWithAnswers(attemptID, score, finishedAt, records); err != nil {
		if errors.Is(err, repository.ErrAttemptAlreadySubmitted) {
			return nil, fmt.Errorf("%w: attempt already submitted", apperrors.ErrConflict)
		}
		log.Printf("[AttemptService] Ошибка завершения попытки #%d: %v", attemptID, err)
		return nil, fmt.Errorf("failed to submit attempt: %w", err)
	}

	return &SubmitResult{
		AttemptID:  attemptID,
		QuizID:     quiz.ID,
		Score:      score,
		TotalScore: quiz.TotalScore,
		FinishedAt: finishedAt,
	}, nil
}

// ListJoined возвращает попытки участника; пустой список считается
// отсутствием результата
func (s *AttemptService) ListJoined(userID uint) ([]entity.Attempt, error) {
	attempts, err := s.attemptRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, fmt.Errorf("%w: no joined quizzes found", apperrors.ErrNotFound)
	}
	return attempts, nil
}

// AnsweredQuestion — вопрос викторины вместе с ответом участника (если был)
type AnsweredQuestion struct {
	Question *entity.Question
	Answer   *entity.AttemptAnswer
}

// AttemptDetail — попытка с развернутыми вопросами и ответами участника
type AttemptDetail struct {
	Attempt   *entity.Attempt
	Quiz      *entity.Quiz
	Questions []AnsweredQuestion
}

// GetJoinedDetail возвращает попытку участника с вопросами викторины и его
// ответами; вопросы без ответа получают nil-запись
func (s *AttemptService) GetJoinedDetail(userID, attemptID uint) (*AttemptDetail, error) {
	attempt, err := s.attemptRepo.GetWithQuiz(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, fmt.Errorf("%w: attempt belongs to another user", apperrors.ErrForbidden)
	}
	if attempt.Quiz == nil {
		return nil, fmt.Errorf("quiz for attempt #%d not loaded", attemptID)
	}

	answers, err := s.attemptRepo.GetAnswers(attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	byQuestion := make(map[uint]*entity.AttemptAnswer, len(answers))
	for i := range answers {
		byQuestion[answers[i].QuestionID] = &answers[i]
	}

	detail := &AttemptDetail{
		Attempt:   attempt,
		Quiz:      attempt.Quiz,
		Questions: make([]AnsweredQuestion, 0, len(attempt.Quiz.Questions)),
	}
	for i := range attempt.Quiz.Questions {
		q := &attempt.Quiz.Questions[i]
		detail.Questions = append(detail.Questions, AnsweredQuestion{
			Question: q,
			Answer:   byQuestion[q.ID],
		})
	}

	return detail, nil
}

// ListQuizAttempts возвращает попытки по викторине; доступно только её создателю
func (s *AttemptService) ListQuizAttempts(requesterID, quizID uint) ([]entity.Attempt, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatorID != requesterID {
		return nil, fmt.Errorf("%w: only the quiz creator can view attempts", apperrors.ErrForbidden)
	}
	return s.attemptRepo.ListByQuiz(quizID)
}
