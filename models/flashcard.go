package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IsAIGenerated is always false from the HTTP surface; the column exists so
// generated cards can be distinguished later.
type Flashcard struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Front              string    `gorm:"type:text;not null" json:"front"`
	Back               string    `gorm:"type:text;not null" json:"back"`
	StudentID          uuid.UUID `gorm:"type:uuid;not null;index" json:"studentId"`
	Student            Student   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	LessonIDForStudent uuid.UUID `gorm:"type:uuid;not null;index" json:"lessonIdForStudent"`
	IsAIGenerated      bool      `gorm:"not null;default:false" json:"isAiGenerated"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
