package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentText  ContentType = "TEXT"
	ContentPDF   ContentType = "PDF"
	ContentImage ContentType = "IMAGE"
)

func (t ContentType) Valid() bool {
	return t == ContentText || t == ContentPDF || t == ContentImage
}

// TextValue is set only for TEXT blocks, FileURL only for PDF/IMAGE blocks.
type ContentBlock struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Type      ContentType `gorm:"type:varchar(10);not null" json:"type"`
	Order     int         `gorm:"column:sort_order;not null" json:"order"`
	TextValue *string     `gorm:"type:text" json:"textValue"`
	FileURL   *string     `gorm:"type:text" json:"fileUrl"`
	LessonID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"lessonId"`
	Lesson    Lesson      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (b *ContentBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
