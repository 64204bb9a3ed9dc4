package entity

import (
	"time"
)

// Question представляет вопрос викторины.
// IsMultipleChoice помечает вопрос как допускающий несколько правильных вариантов,
// но модель ответов хранит один выбранный вариант на вопрос.
type Question struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	QuizID           uint   `gorm:"not null;index" json:"quiz_id"`
	Text             string `gorm:"size:500;not null" json:"question_text"`
	IsMultipleChoice bool   `gorm:"not null;default:false" json:"is_qcm"`
	Points           int    `gorm:"not null;default:0" json:"points"`

	Options []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// OptionByID возвращает вариант ответа по его ID
func (q *Question) OptionByID(optionID uint) (*Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i], true
		}
	}
	return nil, false
}
