package entity

import (
	"time"
)

// AttemptAnswer представляет выбранный участником вариант ответа на вопрос.
// Одна строка на пару (attempt, question); повторная запись обновляет вариант.
type AttemptAnswer struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	AttemptID  uint  `gorm:"not null;index;uniqueIndex:idx_answers_attempt_question" json:"attempt_id"`
	QuestionID uint  `gorm:"not null;uniqueIndex:idx_answers_attempt_question" json:"question_id"`
	OptionID   *uint `json:"option_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
