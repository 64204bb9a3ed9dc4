package service

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// ============================================================================
// Моки репозиториев. Используются также в attempt_service_test.go и
// auth_service_test.go
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) CreateWithQuestions(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) ReplaceWithQuestions(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetByAccessCode(accessCode string) (*entity.Quiz, error) {
	args := m.Called(accessCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) List(filters repository.QuizFilters) ([]entity.Quiz, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListExcludingCreator(creatorID uint) ([]entity.Quiz, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListByCreator(creatorID uint) ([]entity.Quiz, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListBySubject(subjectID uint) ([]entity.Quiz, error) {
	args := m.Called(subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockSubjectRepository реализует repository.SubjectRepository
type MockSubjectRepository struct {
	mock.Mock
}

func (m *MockSubjectRepository) Create(subject *entity.Subject) error {
	args := m.Called(subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) GetByID(id uint) (*entity.Subject, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subject), args.Error(1)
}

func (m *MockSubjectRepository) GetAll() ([]entity.Subject, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Subject), args.Error(1)
}

func (m *MockSubjectRepository) Update(subject *entity.Subject) error {
	args := m.Called(subject)
	return args.Error(0)
}

func (m *MockSubjectRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// ============================================================================
// Тесты для QuizService
// ============================================================================

func validQuizInput() QuizInput {
	return QuizInput{
		Title:     "Столицы мира",
		SubjectID: 1,
		TimeLimit: 30,
		Questions: []QuestionInput{
			{
				Text:   "Столица Франции?",
				Points: 5,
				Options: []OptionInput{
					{Text: "Париж", IsCorrect: true},
					{Text: "Лион"},
				},
			},
			{
				Text:   "Столица Японии?",
				Points: 10,
				Options: []OptionInput{
					{Text: "Токио", IsCorrect: true},
					{Text: "Осака"},
				},
			},
			{
				Text: "Столица Австралии?",
				Options: []OptionInput{
					{Text: "Канберра", IsCorrect: true},
					{Text: "Сидней"},
				},
			},
		},
	}
}

func TestQuizService_CreateQuiz_Success(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockSubjectRepo := new(MockSubjectRepository)

	mockSubjectRepo.On("GetByID", uint(1)).Return(&entity.Subject{ID: 1, Name: "География"}, nil)
	mockQuizRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, nil)

	quiz, err := quizService.CreateQuiz(7, validQuizInput())

	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, uint(7), quiz.CreatorID)
	// Баллы [5, 10, 0] дают суммарный счет 15
	assert.Equal(t, 15, quiz.TotalScore)
	assert.Len(t, quiz.Questions, 3)
	// Порядок вопросов сохраняется
	assert.Equal(t, "Столица Франции?", quiz.Questions[0].Text)
	assert.Equal(t, "Столица Австралии?", quiz.Questions[2].Text)
	mockQuizRepo.AssertExpectations(t)
	mockSubjectRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuiz_AccessCodeShape(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockSubjectRepo := new(MockSubjectRepository)

	mockSubjectRepo.On("GetByID", uint(1)).Return(&entity.Subject{ID: 1}, nil)
	mockQuizRepo.On("CreateWithQuestions", mock.AnythingOfType("*entity.Quiz")).Return(nil)

	quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, nil)

	codePattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		quiz, err := quizService.CreateQuiz(1, validQuizInput())
		require.NoError(t, err)
		assert.Regexp(t, codePattern, quiz.AccessCode)

		n, err := strconv.Atoi(quiz.AccessCode)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestQuizService_CreateQuiz_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*QuizInput)
	}{
		{"empty title", func(in *QuizInput) { in.Title = "   " }},
		{"missing subject", func(in *QuizInput) { in.SubjectID = 0 }},
		{"no questions", func(in *QuizInput) { in.Questions = nil }},
		{"question without text", func(in *QuizInput) { in.Questions[1].Text = "" }},
		{"question without options", func(in *QuizInput) { in.Questions[0].Options = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQuizRepo := new(MockQuizRepository)
			mockSubjectRepo := new(MockSubjectRepository)
			mockSubjectRepo.On("GetByID", mock.Anything).Return(&entity.Subject{ID: 1}, nil).Maybe()

			quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, nil)

			input := validQuizInput()
			tt.mutate(&input)

			quiz, err := quizService.CreateQuiz(1, input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Nil(t, quiz)
			mockQuizRepo.AssertNotCalled(t, "CreateWithQuestions")
		})
	}
}

func TestQuizService_CreateQuiz_UnknownSubject(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockSubjectRepo := new(MockSubjectRepository)

	mockSubjectRepo.On("GetByID", uint(1)).Return(nil, apperrors.ErrNotFound)

	quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, nil)

	quiz, err := quizService.CreateQuiz(1, validQuizInput())

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Nil(t, quiz)
	mockQuizRepo.AssertNotCalled(t, "CreateWithQuestions")
}

func TestQuizService_UpdateQuiz_RecomputesScoreAndKeepsCode(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockSubjectRepo := new(MockSubjectRepository)
	mockCacheRepo := new(MockCacheRepository)

	existing := &entity.Quiz{ID: 3, CreatorID: 7, AccessCode: "123456", TotalScore: 15}
	mockQuizRepo.On("GetByID", uint(3)).Return(existing, nil)
	mockSubjectRepo.On("GetByID", uint(1)).Return(&entity.Subject{ID: 1}, nil)
	mockQuizRepo.On("ReplaceWithQuestions", mock.AnythingOfType("*entity.Quiz")).Return(nil)
	mockCacheRepo.On("Delete", "quiz:preview:123456").Return(nil)

	quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, mockCacheRepo)

	input := validQuizInput()
	input.Questions = input.Questions[:1] // остается один вопрос на 5 баллов

	quiz, err := quizService.UpdateQuiz(3, input)

	require.NoError(t, err)
	assert.Equal(t, uint(3), quiz.ID)
	assert.Equal(t, uint(7), quiz.CreatorID, "создатель не меняется при обновлении")
	assert.Equal(t, "123456", quiz.AccessCode, "код доступа не перегенерируется")
	assert.Equal(t, 5, quiz.TotalScore)
	mockCacheRepo.AssertExpectations(t)
}

func TestQuizService_UpdateQuiz_NotFound(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockSubjectRepo := new(MockSubjectRepository)

	mockQuizRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	quizService := NewQuizService(mockQuizRepo, mockSubjectRepo, nil)

	quiz, err := quizService.UpdateQuiz(99, validQuizInput())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, quiz)
	mockQuizRepo.AssertNotCalled(t, "ReplaceWithQuestions")
}

func TestQuizService_ListBySubject_EmptyIsNotFound(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)

	mockQuizRepo.On("ListBySubject", uint(5)).Return([]entity.Quiz{}, nil)

	quizService := NewQuizService(mockQuizRepo, new(MockSubjectRepository), nil)

	quizzes, err := quizService.ListQuizzesBySubject(5)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, quizzes)
}

func TestQuizService_Preview_HidesOptions(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)

	quiz := &entity.Quiz{
		ID:         4,
		Title:      "Столицы мира",
		AccessCode: "654321",
		TotalScore: 15,
		Questions: []entity.Question{
			{ID: 1, Text: "Столица Франции?", Points: 5, Options: []entity.Option{
				{ID: 1, Text: "Париж", IsCorrect: true},
				{ID: 2, Text: "Лион"},
			}},
		},
	}
	mockQuizRepo.On("GetByAccessCode", "654321").Return(quiz, nil)

	quizService := NewQuizService(mockQuizRepo, new(MockSubjectRepository), nil)

	preview, err := quizService.GetPreviewByAccessCode("654321")

	require.NoError(t, err)
	require.Len(t, preview.Questions, 1)
	assert.Equal(t, "Столица Франции?", preview.Questions[0].Text)
	assert.Equal(t, 5, preview.Questions[0].Points)
	// Превью вопроса не содержит вариантов ответов и признаков правильности —
	// тип PreviewQuestion таких полей не имеет, проверяем что ничего лишнего
	// нет и на уровне значений
	assert.Equal(t, PreviewQuestion{
		QuestionID: 1,
		Text:       "Столица Франции?",
		Points:     5,
	}, preview.Questions[0])
}

func TestQuizService_Preview_CacheHitSkipsRepo(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)

	mockCacheRepo.On("GetJSON", "quiz:preview:111111", mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*QuizPreview)
			dest.QuizID = 9
			dest.Title = "Из кеша"
		}).
		Return(nil)

	quizService := NewQuizService(mockQuizRepo, new(MockSubjectRepository), mockCacheRepo)

	preview, err := quizService.GetPreviewByAccessCode("111111")

	require.NoError(t, err)
	assert.Equal(t, uint(9), preview.QuizID)
	assert.Equal(t, "Из кеша", preview.Title)
	mockQuizRepo.AssertNotCalled(t, "GetByAccessCode")
}

func TestQuizService_DeleteQuiz_InvalidatesPreview(t *testing.T) {
	mockQuizRepo := new(MockQuizRepository)
	mockCacheRepo := new(MockCacheRepository)

	mockQuizRepo.On("GetByID", uint(3)).Return(&entity.Quiz{ID: 3, AccessCode: "222222"}, nil)
	mockQuizRepo.On("Delete", uint(3)).Return(nil)
	mockCacheRepo.On("Delete", "quiz:preview:222222").Return(nil)

	quizService := NewQuizService(mockQuizRepo, new(MockSubjectRepository), mockCacheRepo)

	err := quizService.DeleteQuiz(3)

	require.NoError(t, err)
	mockQuizRepo.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}
