package entity

import (
	"time"
)

// Attempt представляет попытку участника пройти викторину (join-запись).
// Уникальный индекс (quiz_id, user_id) гарантирует одну попытку на пару
// участник/викторина на уровне хранилища.
//
// Жизненный цикл: JOINED (started_at установлен) → SUBMITTED (finished_at и
// score установлены, is_active снят). Обратных переходов нет.
type Attempt struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	QuizID     uint       `gorm:"not null;index;uniqueIndex:idx_attempts_quiz_user" json:"quiz_id"`
	UserID     uint       `gorm:"not null;index;uniqueIndex:idx_attempts_quiz_user" json:"user_id"`
	IsActive   bool       `gorm:"not null;default:true" json:"is_joined"`
	StartedAt  time.Time  `gorm:"not null" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Score      *int       `json:"score,omitempty"`

	Quiz *Quiz `gorm:"foreignKey:QuizID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Attempt) TableName() string {
	return "attempts"
}

// IsSubmitted проверяет, завершена ли попытка отправкой ответов
func (a *Attempt) IsSubmitted() bool {
	return a.FinishedAt != nil
}
