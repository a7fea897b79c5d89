package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One question per (student, lesson), enforced by the composite unique index
// rather than a read-then-write check.
type Question struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title     *string   `gorm:"size:255" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_student_lesson" json:"lessonId"`
	Lesson    Lesson    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_student_lesson" json:"studentId"`
	Student   Student   `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	Answers []Answer `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
