package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is non-negative but not unique within a course; duplicates are allowed.
type Lesson struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Order    int       `gorm:"column:sort_order;not null" json:"order"`
	CourseID uuid.UUID `gorm:"type:uuid;not null;index" json:"courseId"`
	Course   Course    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	ContentBlocks []ContentBlock          `gorm:"foreignKey:LessonID" json:"contentBlocks,omitempty"`
	Progress      []StudentLessonProgress `gorm:"foreignKey:LessonID" json:"-"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
