package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// previewCacheTTL определяет срок жизни кешированных превью викторин
const previewCacheTTL = 5 * time.Minute

// QuizService предоставляет методы создания, изменения и чтения викторин
type QuizService struct {
	quizRepo    repository.QuizRepository
	subjectRepo repository.SubjectRepository
	cacheRepo   repository.CacheRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	subjectRepo repository.SubjectRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:    quizRepo,
		subjectRepo: subjectRepo,
		cacheRepo:   cacheRepo,
	}
}

// OptionInput описывает вариант ответа при создании/обновлении викторины
type OptionInput struct {
	Text      string
	IsCorrect bool
}

// QuestionInput описывает вопрос при создании/обновлении викторины
type QuestionInput struct {
	Text             string
	IsMultipleChoice bool
	Points           int
	Options          []OptionInput
}

// QuizInput описывает викторину при создании/обновлении
type QuizInput struct {
	Title       string
	Description string
	SubjectID   uint
	IsScheduled bool
	TimeLimit   int
	StartAt     *time.Time
	Questions   []QuestionInput
}

// CreateQuiz создает викторину с вложенными вопросами и вариантами атомарно.
// Возвращаемая викторина содержит сгенерированный код доступа и общий счет.
func (s *QuizService) CreateQuiz(creatorID uint, input QuizInput) (*entity.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	// Предмет — внешний ключ; проверяем заранее, чтобы вернуть понятную ошибку
	if _, err := s.subjectRepo.GetByID(input.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject #%d does not exist", apperrors.ErrValidation, input.SubjectID)
		}
		return nil, fmt.Errorf("failed to check subject: %w", err)
	}

	quiz := buildQuizTree(input)
	quiz.CreatorID = creatorID
	quiz.AccessCode = generateAccessCode()

	if err := s.quizRepo.CreateWithQuestions(quiz); err != nil {
		log.Printf("[QuizService] Ошибка создания викторины: %v", err)
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	return quiz, nil
}

// UpdateQuiz заменяет метаданные викторины и все дерево вопросов (destructive rewrite).
// Код доступа и попытки участников не затрагиваются; ответы, ссылающиеся на
// удаленные вопросы, остаются висячими — осознанное упрощение.
func (s *QuizService) UpdateQuiz(quizID uint, input QuizInput) (*entity.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	existing, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}

	if _, err := s.subjectRepo.GetByID(input.SubjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: subject #%d does not exist", apperrors.ErrValidation, input.SubjectID)
		}
		return nil, fmt.Errorf("failed to check subject: %w", err)
	}

	quiz := buildQuizTree(input)
	quiz.ID = quizID
	quiz.CreatorID = existing.CreatorID
	quiz.AccessCode = existing.AccessCode

	if err := s.quizRepo.ReplaceWithQuestions(quiz); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		log.Printf("[QuizService] Ошибка обновления викторины #%d: %v", quizID, err)
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidatePreview(existing.AccessCode)
	return quiz, nil
}

// DeleteQuiz удаляет викторину; вопросы и варианты каскадируются
func (s *QuizService) DeleteQuiz(quizID uint) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}

	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}

	s.invalidatePreview(quiz.AccessCode)
	return nil
}

// GetQuizByID возвращает викторину с вопросами и вариантами
func (s *QuizService) GetQuizByID(quizID uint) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes возвращает викторины с опциональными фильтрами
func (s *QuizService) ListQuizzes(filters repository.QuizFilters) ([]entity.Quiz, error) {
	return s.quizRepo.List(filters)
}

// ListAvailableQuizzes возвращает викторины всех, кроме вызывающего
func (s *QuizService) ListAvailableQuizzes(userID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListExcludingCreator(userID)
}

// ListMyQuizzes возвращает викторины, созданные вызывающим
func (s *QuizService) ListMyQuizzes(userID uint) ([]entity.Quiz, error) {
	return s.quizRepo.ListByCreator(userID)
}

// ListQuizzesBySubject возвращает викторины предмета; пустой список считается
// отсутствием результата
func (s *QuizService) ListQuizzesBySubject(subjectID uint) ([]entity.Quiz, error) {
	quizzes, err := s.quizRepo.ListBySubject(subjectID)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, fmt.Errorf("%w: no quizzes found for subject #%d", apperrors.ErrNotFound, subjectID)
	}
	return quizzes, nil
}

// QuizPreview — превью викторины до присоединения: вопросы без вариантов
// ответов и признаков правильности, чтобы не раскрывать ответы
type QuizPreview struct {
	QuizID      uint              `json:"quiz_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	IsScheduled bool              `json:"is_schedule"`
	TimeLimit   int               `json:"time_limit"`
	TotalScore  int               `json:"total_score"`
	StartAt     *time.Time        `json:"start_at,omitempty"`
	Questions   []PreviewQuestion `json:"questions"`
}

// PreviewQuestion — вопрос в превью: только текст, флаг и баллы
type PreviewQuestion struct {
	QuestionID       uint   `json:"question_id"`
	Text             string `json:"question_text"`
	IsMultipleChoice bool   `json:"is_qcm"`
	Points           int    `json:"points"`
}

// GetPreviewByAccessCode возвращает превью викторины по коду доступа.
// Результат кешируется в Redis и инвалидируется при изменении/удалении викторины.
func (s *QuizService) GetPreviewByAccessCode(accessCode string) (*QuizPreview, error) {
	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return nil, fmt.Errorf("%w: access code is required", apperrors.ErrValidation)
	}

	cacheKey := previewCacheKey(accessCode)
	if s.cacheRepo != nil {
		var cached QuizPreview
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	quiz, err := s.quizRepo.GetByAccessCode(accessCode)
	if err != nil {
		return nil, err
	}

	preview := &QuizPreview{
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		IsScheduled: quiz.IsScheduled,
		TimeLimit:   quiz.TimeLimit,
		TotalScore:  quiz.TotalScore,
		StartAt:     quiz.StartAt,
		Questions:   make([]PreviewQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		preview.Questions = append(preview.Questions, PreviewQuestion{
			QuestionID:       q.ID,
			Text:             q.Text,
			IsMultipleChoice: q.IsMultipleChoice,
			Points:           q.Points,
		})
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, preview, previewCacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи превью в кеш: %v", err)
		}
	}

	return preview, nil
}

// validateQuizInput проверяет обязательные поля викторины и каждого вопроса
func validateQuizInput(input QuizInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if input.SubjectID == 0 {
		return fmt.Errorf("%w: subject_id is required", apperrors.ErrValidation)
	}
	if len(input.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", apperrors.ErrValidation)
	}
	for i, q := range input.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("%w: question #%d has no text", apperrors.ErrValidation, i+1)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question #%d has no options", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

// buildQuizTree собирает entity-дерево викторины, сохраняя порядок входных данных
func buildQuizTree(input QuizInput) *entity.Quiz {
	questions := make([]entity.Question, 0, len(input.Questions))
	for _, q := range input.Questions {
		options := make([]entity.Option, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, entity.Option{
				Text:      o.Text,
				IsCorrect: o.IsCorrect,
			})
		}
		questions = append(questions, entity.Question{
			Text:             q.Text,
			IsMultipleChoice: q.IsMultipleChoice,
			Points:           q.Points,
			Options:          options,
		})
	}

	return &entity.Quiz{
		Title:       input.Title,
		Description: input.Description,
		SubjectID:   input.SubjectID,
		IsScheduled: input.IsScheduled,
		TimeLimit:   input.TimeLimit,
		StartAt:     input.StartAt,
		TotalScore:  entity.ComputeTotalScore(questions),
		Questions:   questions,
	}
}

// generateAccessCode возвращает 6-значный числовой код доступа.
// Код равномерно распределен в [100000, 999999]; коллизии с существующими
// кодами не проверяются, уникальность страхует индекс в БД.
func generateAccessCode() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

// invalidatePreview удаляет кешированное превью викторины
func (s *QuizService) invalidatePreview(accessCode string) {
	if s.cacheRepo == nil || accessCode == "" {
		return
	}
	if err := s.cacheRepo.Delete(previewCacheKey(accessCode)); err != nil {
		log.Printf("[QuizService] Ошибка инвалидации превью для кода %s: %v", accessCode, err)
	}
}

func previewCacheKey(accessCode string) string {
	return "quiz:preview:" + accessCode
}
