package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tutorhub/tutoring-backend/models"
)

type EnrollInput struct {
	StudentID string `json:"studentId"`
}

type CreateFlashcardInput struct {
	StudentID string `json:"studentId"`
	Front     string `json:"front"`
	Back      string `json:"back"`
}

var errAlreadyEnrolled = errors.New("student already enrolled")

// EnrollStudent creates one progress row per lesson the course currently has.
// The insert is ON CONFLICT DO NOTHING on the composite key inside a
// transaction. Any conflict means a prior enrollment, so the transaction is
// rolled back and mapped to 409; lessons added after enrollment never gain
// progress rows through re-enrollment.
func EnrollStudent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil || input.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId is required in the request body."})
		return
	}
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	if err := db.Select("id").First(&models.Student{}, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll in course"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	var course models.Course
	if err := db.Preload("Lessons").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll in course"})
		return
	}
	if len(course.Lessons) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot enroll in a course with no lessons."})
		return
	}

	rows := make([]models.StudentLessonProgress, 0, len(course.Lessons))
	for _, lesson := range course.Lessons {
		rows = append(rows, models.StudentLessonProgress{
			StudentID: studentID,
			LessonID:  lesson.ID,
			Completed: false,
		})
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected < int64(len(rows)) {
			return errAlreadyEnrolled
		}
		return nil
	})
	if errors.Is(txErr, errAlreadyEnrolled) {
		c.JSON(http.StatusConflict, gin.H{"error": "Student already enrolled in this course."})
		return
	}
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enroll in course"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully enrolled in course."})
}

// UpdateLessonProgress marks a lesson complete for a student. A missing
// progress row means the student never enrolled.
func UpdateLessonProgress(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil || input.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId is required in the request body."})
		return
	}
	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := db.Select("id").First(&models.Student{}, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson progress"})
		return
	}
	if err := db.Select("id").First(&models.Lesson{}, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson progress"})
		return
	}

	now := time.Now().UTC()
	res := db.Model(&models.StudentLessonProgress{}).
		Where("student_id = ? AND lesson_id = ?", studentID, lessonID).
		Updates(map[string]interface{}{"completed": true, "completed_at": now})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson progress"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson progress not found for this student and lesson. Ensure student is enrolled."})
		return
	}

	var progress models.StudentLessonProgress
	if err := db.First(&progress, "student_id = ? AND lesson_id = ?", studentID, lessonID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

func CreateFlashcard(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateFlashcardInput
	if err := c.ShouldBindJSON(&input); err != nil || input.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId is required in the request body."})
		return
	}
	if input.Front == "" || input.Back == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Flashcard front and back content are required."})
		return
	}

	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}

	if err := db.Select("id").First(&models.Student{}, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flashcard"})
		return
	}
	if err := db.Select("id").First(&models.Lesson{}, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flashcard"})
		return
	}

	card := models.Flashcard{
		Front:              input.Front,
		Back:               input.Back,
		StudentID:          studentID,
		LessonIDForStudent: lessonID,
		IsAIGenerated:      false,
	}
	if err := db.Create(&card).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create flashcard"})
		return
	}
	c.JSON(http.StatusCreated, card)
}
