package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description"`
	CoverPictureURL *string   `gorm:"type:text" json:"coverPictureUrl"`
	TutorID         uuid.UUID `gorm:"type:uuid;not null;index" json:"tutorId"`
	Tutor           Tutor     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Lessons []Lesson `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
