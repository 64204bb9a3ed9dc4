package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/quizhub-api/internal/domain/entity"
	"github.com/yourusername/quizhub-api/internal/domain/repository"
	"github.com/yourusername/quizhub-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
	"github.com/yourusername/quizhub-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	quizService    *service.QuizService
	attemptService *service.AttemptService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, attemptService *service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
	}
}

// OptionRequest представляет вариант ответа в запросе
type OptionRequest struct {
	Text      string `json:"option_text" binding:"required,max=500"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest представляет вопрос в запросе
type QuestionRequest struct {
	Text             string          `json:"question_text" binding:"required,min=1,max=1000"`
	IsMultipleChoice bool            `json:"is_qcm"`
	Points           int             `json:"points" binding:"omitempty,min=0"`
	Options          []OptionRequest `json:"options" binding:"required,min=1,dive"`
}

// QuizRequest представляет запрос на создание или обновление викторины
type QuizRequest struct {
	Title       string            `json:"title" binding:"required,min=1,max=200"`
	Description string            `json:"description" binding:"omitempty,max=1000"`
	SubjectID   uint              `json:"subject_id" binding:"required"`
	IsScheduled bool              `json:"is_schedule"`
	TimeLimit   int               `json:"time_limit" binding:"omitempty,min=0"`
	StartAt     *time.Time        `json:"start_at"`
	Questions   []QuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// toQuizInput преобразует запрос в формат сервиса, сохраняя порядок вопросов
func (r *QuizRequest) toQuizInput() service.QuizInput {
	questions := make([]service.QuestionInput, 0, len(r.Questions))
	for _, q := range r.Questions {
		options := make([]service.OptionInput, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, service.OptionInput{Text: o.Text, IsCorrect: o.IsCorrect})
		}
		questions = append(questions, service.QuestionInput{
			Text:             q.Text,
			IsMultipleChoice: q.IsMultipleChoice,
			Points:           q.Points,
			Options:          options,
		})
	}
	return service.QuizInput{
		Title:       r.Title,
		Description: r.Description,
		SubjectID:   r.SubjectID,
		IsScheduled: r.IsScheduled,
		TimeLimit:   r.TimeLimit,
		StartAt:     r.StartAt,
		Questions:   questions,
	}
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(userID, req.toQuizInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"quiz_id":     quiz.ID,
		"access_code": quiz.AccessCode,
		"total_score": quiz.TotalScore,
	})
}

// GetQuiz возвращает викторину с полным деревом вопросов и вариантов.
// Маршрут закрыт аутентификацией; скрытие ответов до присоединения — задача
// отдельного превью-эндпоинта
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuizByID(quizID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// UpdateQuiz обрабатывает запрос на полную замену викторины
func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.requireOwner(c, quizID, userID); err != nil {
		return
	}

	quiz, err := h.quizService.UpdateQuiz(quizID, req.toQuizInput())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quiz_id":     quiz.ID,
		"access_code": quiz.AccessCode,
		"total_score": quiz.TotalScore,
	})
}

// DeleteQuiz обрабатывает запрос на удаление викторины
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)

	if err := h.requireOwner(c, quizID, userID); err != nil {
		return
	}

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

// ListQuizzes возвращает список викторин с опциональными фильтрами
// GET /api/quizzes?subject_id=&creator_id=
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	var filters repository.QuizFilters
	if v := c.Query("subject_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subject_id"})
			return
		}
		subjectID := uint(id)
		filters.SubjectID = &subjectID
	}
	if v := c.Query("creator_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator_id"})
			return
		}
		creatorID := uint(id)
		filters.CreatorID = &creatorID
	}

	quizzes, err := h.quizService.ListQuizzes(filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// ListAvailable возвращает викторины других пользователей
func (h *QuizHandler) ListAvailable(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListAvailableQuizzes(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// ListMine возвращает викторины, созданные вызывающим
func (h *QuizHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListMyQuizzes(userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// ListBySubject возвращает викторины предмета
func (h *QuizHandler) ListBySubject(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(uint)

	quizzes, err := h.quizService.ListQuizzesBySubject(subjectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes))
}

// Preview возвращает превью викторины по коду доступа
// GET /api/quizzes/preview?access_code=
func (h *QuizHandler) Preview(c *gin.Context) {
	preview, err := h.quizService.GetPreviewByAccessCode(c.Query("access_code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// requireOwner проверяет, что викторина принадлежит вызывающему
func (h *QuizHandler) requireOwner(c *gin.Context, quizID, userID uint) error {
	quiz, err := h.quizService.GetQuizByID(quizID)
	if err != nil {
		handleServiceError(c, err)
		return err
	}
	if quiz.CreatorID != userID {
		err := fmt.Errorf("%w: only the quiz creator can modify it", apperrors.ErrForbidden)
		handleServiceError(c, err)
		return err
	}
	return nil
}

// ExportAttempts экспортирует попытки викторины в CSV или Excel формате
// GET /api/quizzes/:quizId/attempts/export?format=csv|xlsx
func (h *QuizHandler) ExportAttempts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	quizID := c.MustGet("quizID").(uint)
	format := c.DefaultQuery("format", "csv")

	attempts, err := h.attemptService.ListQuizAttempts(userID, quizID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("quiz_%d_attempts_%s", quizID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, attempts, filename)
	default:
		h.exportCSV(c, attempts, filename)
	}
}

// exportCSV выгружает попытки в CSV с правильным экранированием спецсимволов
func (h *QuizHandler) exportCSV(c *gin.Context, attempts []entity.Attempt, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Участник", "Email", "Очки", "Присоединился", "Завершил", "Статус"})

	for _, a := range attempts {
		writer.Write(attemptExportRow(&a))
	}
}

// exportXLSX выгружает попытки в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, attempts []entity.Attempt, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Попытки"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuizHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Участник", "Email", "Очки", "Присоединился", "Завершил", "Статус"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	for i, a := range attempts {
		cell := fmt.Sprintf("A%d", i+2) // 1 строка — заголовки
		strRow := attemptExportRow(&a)
		row := make([]interface{}, len(strRow))
		for j, v := range strRow {
			row[j] = v
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuizHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}

// attemptExportRow собирает строку экспорта для одной попытки
func attemptExportRow(a *entity.Attempt) []string {
	name := ""
	email := ""
	if a.User != nil {
		name = a.User.FullName
		email = a.User.Email
	}
	score := ""
	if a.Score != nil {
		score = strconv.Itoa(*a.Score)
	}
	finished := ""
	status := "Не завершена"
	if a.FinishedAt != nil {
		finished = a.FinishedAt.Format(time.RFC3339)
		status = "Завершена"
	}
	return []string{
		sanitizeForExcel(name),
		sanitizeForExcel(email),
		score,
		a.StartedAt.Format(time.RFC3339),
		finished,
		status,
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
