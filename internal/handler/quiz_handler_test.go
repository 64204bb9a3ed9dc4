package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	"github.com/yourusername/quizhub-api/internal/service"
)

// stubQuizRepo реализует repository.QuizRepository с фиксированной викториной
type stubQuizRepo struct {
	quiz *entity.Quiz
}

func (s *stubQuizRepo) CreateWithQuestions(quiz *entity.Quiz) error   { return nil }
func (s *stubQuizRepo) ReplaceWithQuestions(quiz *entity.Quiz) error  { return nil }
func (s *stubQuizRepo) GetByID(id uint) (*entity.Quiz, error)         { return s.quiz, nil }
func (s *stubQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	return s.quiz, nil
}
func (s *stubQuizRepo) GetByAccessCode(code string) (*entity.Quiz, error) { return s.quiz, nil }
func (s *stubQuizRepo) List(f repository.QuizFilters) ([]entity.Quiz, error) {
	return nil, nil
}
func (s *stubQuizRepo) ListExcludingCreator(id uint) ([]entity.Quiz, error) { return nil, nil }
func (s *stubQuizRepo) ListByCreator(id uint) ([]entity.Quiz, error)        { return nil, nil }
func (s *stubQuizRepo) ListBySubject(id uint) ([]entity.Quiz, error)        { return nil, nil }
func (s *stubQuizRepo) Delete(id uint) error                                { return nil }

// Любой аутентифицированный пользователь получает полное дерево вопросов и
// вариантов с признаками правильности, не только создатель викторины
func TestGetQuiz_ReturnsFullTreeToNonOwner(t *testing.T) {
	quiz := &entity.Quiz{
		ID:        1,
		Title:     "Столицы мира",
		CreatorID: 100,
		Questions: []entity.Question{
			{ID: 1, QuizID: 1, Text: "Столица Франции?", Points: 5, Options: []entity.Option{
				{ID: 11, QuestionID: 1, Text: "Париж", IsCorrect: true},
				{ID: 12, QuestionID: 1, Text: "Лион"},
			}},
		},
	}
	quizService := service.NewQuizService(&stubQuizRepo{quiz: quiz}, nil, nil)
	handler := NewQuizHandler(quizService, nil)

	c, w := newTestGinContext(http.MethodGet, "/api/quizzes/1", nil)
	c.Set("user_id", uint(200)) // не создатель
	c.Set("quizID", uint(1))

	handler.GetQuiz(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)

	questions, ok := resp["questions"].([]interface{})
	require.True(t, ok, "ответ должен содержать вопросы: %s", w.Body.String())
	require.Len(t, questions, 1)

	question := questions[0].(map[string]interface{})
	assert.Equal(t, "Столица Франции?", question["question_text"])

	options, ok := question["options"].([]interface{})
	require.True(t, ok, "вопрос должен содержать варианты ответов")
	require.Len(t, options, 2)
	assert.Equal(t, true, options[0].(map[string]interface{})["is_correct"])
}
