package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentLessonProgress rows are bulk-created at enrollment, one per lesson
// the course had at that moment. The composite primary key makes re-enrollment
// idempotent (ON CONFLICT DO NOTHING).
type StudentLessonProgress struct {
	StudentID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"studentId"`
	LessonID    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"lessonId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`

	Student Student `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Lesson  Lesson  `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (StudentLessonProgress) TableName() string {
	return "student_lesson_progress"
}
