package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exactly one of StudentID/TutorID is set, matching the author's role.
type Answer struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	QuestionID uuid.UUID  `gorm:"type:uuid;not null;index" json:"questionId"`
	Question   Question   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	StudentID  *uuid.UUID `gorm:"type:uuid" json:"studentId"`
	Student    *Student   `gorm:"foreignKey:StudentID" json:"-"`
	TutorID    *uuid.UUID `gorm:"type:uuid" json:"tutorId"`
	Tutor      *Tutor     `gorm:"foreignKey:TutorID" json:"-"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (a *Answer) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
