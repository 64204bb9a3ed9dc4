package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizhub-api/internal/handler/dto"
	"github.com/yourusername/quizhub-api/internal/service"
)

// AttemptHandler обрабатывает присоединение к викторинам и отправку ответов
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// JoinRequest представляет запрос на присоединение к викторине
type JoinRequest struct {
	AccessCode string `json:"access_code" binding:"required,len=6,numeric"`
}

// Join обрабатывает присоединение к викторине по коду доступа.
// Повторное присоединение возвращает существующую попытку со статусом 200.
func (h *AttemptHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attemptService.Join(userID, req.AccessCode)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewJoinResponse(result))
}

// SubmitRequest представляет запрос на отправку ответов
type SubmitRequest struct {
	JoinID  uint `json:"join_id" binding:"required"`
	Answers []struct {
		QuestionID uint `json:"question_id" binding:"required"`
		OptionID   uint `json:"option_id" binding:"required"`
	} `json:"answers" binding:"required,dive"`
}

// Submit обрабатывает отправку ответов и завершение попытки
func (h *AttemptHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answers := make([]service.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, service.AnswerInput{
			QuestionID: a.QuestionID,
			OptionID:   a.OptionID,
		})
	}

	result, err := h.attemptService.Submit(userID, req.JoinID, answers)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSubmitResponse(result))
}

// ListJoined возвращает викторины, к которым присоединился участник
func (h *AttemptHandler) ListJoined(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	attempts, err := h.attemptService.ListJoined(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListJoinedResponse(attempts))
}

// GetJoinedDetail возвращает попытку участника с вопросами и его ответами
func (h *AttemptHandler) GetJoinedDetail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	joinID := c.MustGet("joinID").(uint) // Получаем из контекста

	detail, err := h.attemptService.GetJoinedDetail(userID, joinID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAttemptDetailResponse(detail))
}
