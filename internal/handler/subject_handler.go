package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizhub-api/internal/service"
)

// SubjectHandler обрабатывает запросы, связанные с предметами
type SubjectHandler struct {
	subjectService *service.SubjectService
}

// NewSubjectHandler создает новый обработчик предметов
func NewSubjectHandler(subjectService *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// SubjectRequest представляет запрос на создание или обновление предмета
type SubjectRequest struct {
	Name string `json:"subject_name" binding:"required,min=1,max=100"`
}

// CreateSubject обрабатывает запрос на создание предмета
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.subjectService.CreateSubject(req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// GetSubject возвращает предмет по идентификатору
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(uint) // Получаем из контекста

	subject, err := h.subjectService.GetSubjectByID(subjectID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// ListSubjects возвращает все предметы, упорядоченные по названию
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.subjectService.ListSubjects()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// UpdateSubject обрабатывает запрос на переименование предмета
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(uint)

	var req SubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subject, err := h.subjectService.UpdateSubject(subjectID, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}

// DeleteSubject обрабатывает запрос на удаление предмета
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	subjectID := c.MustGet("subjectID").(uint)

	if err := h.subjectService.DeleteSubject(subjectID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
