package entity

// Option представляет вариант ответа на вопрос
type Option struct {
	ID         uint   `gorm:"primaryKey" json:"option_id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"option_text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "options"
}
