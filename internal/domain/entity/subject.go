package entity

// Subject представляет учебный предмет, к которому привязываются викторины
type Subject struct {
	ID   uint   `gorm:"primaryKey" json:"subject_id"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"subject_name"`
}

// TableName определяет имя таблицы для GORM
func (Subject) TableName() string {
	return "subjects"
}
