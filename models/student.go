package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Email uniqueness is per table, so a tutor and a student may share one email.
type Student struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Email     string    `gorm:"size:150;uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Questions  []Question  `gorm:"foreignKey:StudentID" json:"questions,omitempty"`
	Flashcards []Flashcard `gorm:"foreignKey:StudentID" json:"flashcards,omitempty"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
