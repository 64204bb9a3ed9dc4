package entity

import (
	"time"
)

// Quiz представляет викторину с вложенным деревом вопросов и вариантов.
// TotalScore — производное поле: сумма баллов вопросов на момент последней записи.
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000;not null;default:''" json:"description"`
	CreatorID   uint       `gorm:"not null;index" json:"creator_id"`
	SubjectID   uint       `gorm:"not null;index" json:"subject_id"`
	IsScheduled bool       `gorm:"not null;default:false" json:"is_schedule"`
	TimeLimit   int        `gorm:"not null;default:0" json:"time_limit"`
	AccessCode  string     `gorm:"size:6;not null;uniqueIndex" json:"access_code"`
	TotalScore  int        `gorm:"not null;default:0" json:"total_score"`
	StartAt     *time.Time `json:"start_at,omitempty"`

	Creator   *User      `gorm:"foreignKey:CreatorID" json:"-"`
	Subject   *Subject   `gorm:"foreignKey:SubjectID" json:"-"`
	Questions []Question `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionByID возвращает вопрос викторины по его ID
func (q *Quiz) QuestionByID(questionID uint) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i], true
		}
	}
	return nil, false
}

// ComputeTotalScore возвращает сумму баллов вопросов.
// Отсутствующее значение баллов (нулевое) даёт вклад 0.
func ComputeTotalScore(questions []Question) int {
	total := 0
	for _, question := range questions {
		total += question.Points
	}
	return total
}
