package dto

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
)

// OptionResponse представляет вариант ответа в формате для ответа клиенту
type OptionResponse struct {
	OptionID  uint   `json:"option_id"`
	Text      string `json:"option_text"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	QuestionID       uint             `json:"question_id"`
	Text             string           `json:"question_text"`
	IsMultipleChoice bool             `json:"is_qcm"`
	Points           int              `json:"points"`
	Options          []OptionResponse `json:"options,omitempty"`
}

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	QuizID      uint               `json:"quiz_id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	SubjectID   uint               `json:"subject_id"`
	SubjectName string             `json:"subject_name,omitempty"`
	CreatorName string             `json:"creator_name,omitempty"`
	IsScheduled bool               `json:"is_schedule"`
	TimeLimit   int                `json:"time_limit"`
	AccessCode  string             `json:"access_code,omitempty"`
	TotalScore  int                `json:"total_score"`
	StartAt     *time.Time         `json:"start_at,omitempty"`
	CreatedAt   time.Time          `json:"creation_at"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
}

// NewQuestionResponse создает DTO для вопроса вместе с вариантами ответов
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	options := make([]OptionResponse, len(q.Options))
	for i, o := range q.Options {
		options[i] = OptionResponse{
			OptionID:  o.ID,
			Text:      o.Text,
			IsCorrect: o.IsCorrect,
		}
	}
	return QuestionResponse{
		QuestionID:       q.ID,
		Text:             q.Text,
		IsMultipleChoice: q.IsMultipleChoice,
		Points:           q.Points,
		Options:          options,
	}
}

// NewQuizResponse создает DTO для викторины.
// includeQuestions управляет включением полного дерева вопросов с вариантами
// и признаками правильности — только для владельца викторины.
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) *QuizResponse {
	if quiz == nil {
		return nil
	}

	var questionsDTO []QuestionResponse
	if includeQuestions {
		questionsDTO = make([]QuestionResponse, len(quiz.Questions))
		for i := range quiz.Questions {
			questionsDTO[i] = NewQuestionResponse(&quiz.Questions[i])
		}
	}

	resp := &QuizResponse{
		QuizID:      quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		SubjectID:   quiz.SubjectID,
		IsScheduled: quiz.IsScheduled,
		TimeLimit:   quiz.TimeLimit,
		AccessCode:  quiz.AccessCode,
		TotalScore:  quiz.TotalScore,
		StartAt:     quiz.StartAt,
		CreatedAt:   quiz.CreatedAt,
		Questions:   questionsDTO,
	}
	if quiz.Subject != nil {
		resp.SubjectName = quiz.Subject.Name
	}
	if quiz.Creator != nil {
		resp.CreatorName = quiz.Creator.FullName
	}
	return resp
}

// NewListQuizResponse создает слайс DTO для списка викторин (без вопросов)
func NewListQuizResponse(quizzes []entity.Quiz) []*QuizResponse {
	list := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		list[i] = NewQuizResponse(&quizzes[i], false)
	}
	return list
}
