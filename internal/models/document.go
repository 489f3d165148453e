package models

import "time"

// Storage keys of the three persisted documents.
const (
	HabitsDocumentKey  = "lifeseed-habits"
	TasksDocumentKey   = "lifeseed-tasks"
	FinanceDocumentKey = "lifeseed-finance"
)

// Document is the SQL row holding one persisted store as JSON.
type Document struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName pins the table created by the migrations.
func (Document) TableName() string {
	return "documents"
}
