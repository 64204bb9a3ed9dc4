package dto

import (
	"time"

	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/service"
)

// noAnswerText возвращается вместо текста варианта для вопросов без ответа
const noAnswerText = "No answer"

// JoinResponse представляет результат присоединения к викторине
type JoinResponse struct {
	JoinID        uint      `json:"join_id"`
	QuizID        uint      `json:"quiz_id"`
	Title         string    `json:"title"`
	TimeLimit     int       `json:"time_limit"`
	TotalScore    int       `json:"total_score"`
	AlreadyJoined bool      `json:"already_joined"`
	StartedAt     time.Time `json:"started_at"`
}

// NewJoinResponse создает DTO для результата присоединения
func NewJoinResponse(result *service.JoinResult) *JoinResponse {
	return &JoinResponse{
		JoinID:        result.Attempt.ID,
		QuizID:        result.Quiz.ID,
		Title:         result.Quiz.Title,
		TimeLimit:     result.Quiz.TimeLimit,
		TotalScore:    result.Quiz.TotalScore,
		AlreadyJoined: !result.Created,
		StartedAt:     result.Attempt.StartedAt,
	}
}

// SubmitResponse представляет итог завершенной попытки
type SubmitResponse struct {
	JoinID     uint      `json:"join_id"`
	QuizID     uint      `json:"quiz_id"`
	Score      int       `json:"score"`
	TotalScore int       `json:"total_score"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewSubmitResponse создает DTO для итога попытки
func NewSubmitResponse(result *service.SubmitResult) *SubmitResponse {
	return &SubmitResponse{
		JoinID:     result.AttemptID,
		QuizID:     result.QuizID,
		Score:      result.Score,
		TotalScore: result.TotalScore,
		FinishedAt: result.FinishedAt,
	}
}

// JoinedQuizResponse представляет попытку участника в списке его викторин
type JoinedQuizResponse struct {
	JoinID     uint       `json:"join_id"`
	QuizID     uint       `json:"quiz_id"`
	Title      string     `json:"title"`
	SubjectID  uint       `json:"subject_id,omitempty"`
	TimeLimit  int        `json:"time_limit"`
	TotalScore int        `json:"total_score"`
	IsJoined   bool       `json:"is_joined"`
	Score      *int       `json:"score,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// NewJoinedQuizResponse создает DTO для попытки из списка участника
func NewJoinedQuizResponse(attempt *entity.Attempt) *JoinedQuizResponse {
	resp := &JoinedQuizResponse{
		JoinID:     attempt.ID,
		QuizID:     attempt.QuizID,
		IsJoined:   attempt.IsActive,
		Score:      attempt.Score,
		StartedAt:  attempt.StartedAt,
		FinishedAt: attempt.FinishedAt,
	}
	if attempt.Quiz != nil {
		resp.Title = attempt.Quiz.Title
		resp.SubjectID = attempt.Quiz.SubjectID
		resp.TimeLimit = attempt.Quiz.TimeLimit
		resp.TotalScore = attempt.Quiz.TotalScore
	}
	return resp
}

// NewListJoinedResponse создает слайс DTO для списка попыток участника
func NewListJoinedResponse(attempts []entity.Attempt) []*JoinedQuizResponse {
	list := make([]*JoinedQuizResponse, len(attempts))
	for i := range attempts {
		list[i] = NewJoinedQuizResponse(&attempts[i])
	}
	return list
}

// UserAnswerResponse представляет ответ участника на вопрос.
// Для вопросов без ответа option_id отсутствует, а текст — "No answer".
type UserAnswerResponse struct {
	OptionID   *uint  `json:"option_id,omitempty"`
	AnswerText string `json:"answer_text"`
}

// AnsweredQuestionResponse представляет вопрос с ответом участника
type AnsweredQuestionResponse struct {
	QuestionID       uint               `json:"question_id"`
	Text             string             `json:"question_text"`
	IsMultipleChoice bool               `json:"is_qcm"`
	Points           int                `json:"points"`
	UserAnswer       UserAnswerResponse `json:"user_answer"`
}

// AttemptDetailResponse представляет попытку с развернутыми вопросами
type AttemptDetailResponse struct {
	JoinID     uint                       `json:"join_id"`
	QuizID     uint                       `json:"quiz_id"`
	Title      string                     `json:"title"`
	TotalScore int                        `json:"total_score"`
	Score      *int                       `json:"score,omitempty"`
	StartedAt  time.Time                  `json:"started_at"`
	FinishedAt *time.Time                 `json:"finished_at,omitempty"`
	Questions  []AnsweredQuestionResponse `json:"questions"`
}

// NewAttemptDetailResponse создает DTO для детальной попытки участника
func NewAttemptDetailResponse(detail *service.AttemptDetail) *AttemptDetailResponse {
	resp := &AttemptDetailResponse{
		JoinID:     detail.Attempt.ID,
		QuizID:     detail.Quiz.ID,
		Title:      detail.Quiz.Title,
		TotalScore: detail.Quiz.TotalScore,
		Score:      detail.Attempt.Score,
		StartedAt:  detail.Attempt.StartedAt,
		FinishedAt: detail.Attempt.FinishedAt,
		Questions:  make([]AnsweredQuestionResponse, 0, len(detail.Questions)),
	}

	for _, aq := range detail.Questions {
		answer := UserAnswerResponse{AnswerText: noAnswerText}
		if aq.Answer != nil && aq.Answer.OptionID != nil {
			answer.OptionID = aq.Answer.OptionID
			if option, ok := aq.Question.OptionByID(*aq.Answer.OptionID); ok {
				answer.AnswerText = option.Text
			}
		}
		resp.Questions = append(resp.Questions, AnsweredQuestionResponse{
			QuestionID:       aq.Question.ID,
			Text:             aq.Question.Text,
			IsMultipleChoice: aq.Question.IsMultipleChoice,
			Points:           aq.Question.Points,
			UserAnswer:       answer,
		})
	}

	return resp
}
