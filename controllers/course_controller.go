package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorhub/tutoring-backend/models"
)

type TutorSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CourseResponse struct {
	models.Course
	Tutor       TutorSummary `json:"tutor"`
	LessonCount int64        `json:"lessonCount"`
}

type CreateCourseInput struct {
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	CoverPictureURL *string `json:"coverPictureUrl"`
	TutorID         string  `json:"tutorId"`
}

type CreateLessonInput struct {
	Title string `json:"title"`
	Order *int   `json:"order"`
}

type CreateContentBlockInput struct {
	Type      string  `json:"type"`
	TextValue *string `json:"textValue"`
	FileURL   *string `json:"fileUrl"`
	Order     *int    `json:"order"`
}

// GetCourses lists courses newest-first with a tutor summary and lesson count.
func GetCourses(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var courses []models.Course
	if err := db.Preload("Tutor").Order("created_at DESC").Find(&courses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve courses"})
		return
	}

	type lessonCount struct {
		CourseID uuid.UUID
		Count    int64
	}
	var counts []lessonCount
	if err := db.Model(&models.Lesson{}).
		Select("course_id, COUNT(*) AS count").
		Group("course_id").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve courses"})
		return
	}
	countByCourse := make(map[uuid.UUID]int64, len(counts))
	for _, lc := range counts {
		countByCourse[lc.CourseID] = lc.Count
	}

	resp := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, CourseResponse{
			Course:      course,
			Tutor:       TutorSummary{ID: course.Tutor.ID, Name: course.Tutor.Name},
			LessonCount: countByCourse[course.ID],
		})
	}
	c.JSON(http.StatusOK, resp)
}

func CreateCourse(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" || input.TutorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course title and tutorId are required"})
		return
	}

	tutorID, err := uuid.Parse(input.TutorID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tutorId"})
		return
	}

	var tutor models.Tutor
	if err := db.First(&tutor, "id = ?", tutorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tutor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	course := models.Course{
		Title:           input.Title,
		Description:     input.Description,
		CoverPictureURL: input.CoverPictureURL,
		TutorID:         tutorID,
	}
	if err := db.Create(&course).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create course"})
		return
	}

	c.JSON(http.StatusCreated, struct {
		models.Course
		Tutor TutorSummary `json:"tutor"`
	}{course, TutorSummary{ID: tutor.ID, Name: tutor.Name}})
}

func CreateLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must be a non-negative number"})
		return
	}
	if input.Title == "" || input.Order == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lesson title and order are required"})
		return
	}
	if *input.Order < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order must be a non-negative number"})
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if err := db.Select("id").First(&models.Course{}, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add lesson"})
		return
	}

	lesson := models.Lesson{
		Title:    input.Title,
		Order:    *input.Order,
		CourseID: courseID,
	}
	if err := db.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add lesson"})
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// CreateContentBlock validates the type-conditional field: TEXT needs
// textValue, PDF/IMAGE need fileUrl; the non-applicable field is stored NULL.
func CreateContentBlock(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateContentBlockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid non-negative order is required"})
		return
	}

	blockType := models.ContentType(input.Type)
	if !blockType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid content type (TEXT, PDF, IMAGE) is required"})
		return
	}
	if blockType == models.ContentText && (input.TextValue == nil || *input.TextValue == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "textValue is required for TEXT content type"})
		return
	}
	if (blockType == models.ContentPDF || blockType == models.ContentImage) && (input.FileURL == nil || *input.FileURL == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("fileUrl is required for %s content type", blockType)})
		return
	}
	if input.Order == nil || *input.Order < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid non-negative order is required"})
		return
	}

	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		return
	}
	if err := db.Select("id").First(&models.Lesson{}, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add content block"})
		return
	}

	block := models.ContentBlock{
		Type:     blockType,
		Order:    *input.Order,
		LessonID: lessonID,
	}
	if blockType == models.ContentText {
		block.TextValue = input.TextValue
	} else {
		block.FileURL = input.FileURL
	}

	if err := db.Create(&block).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add content block"})
		return
	}
	c.JSON(http.StatusCreated, block)
}

// GetLessons returns a course's lessons ascending by order, each with its
// content blocks ascending by order.
func GetLessons(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	courseIDStr := c.Query("courseId")
	if courseIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId query parameter is required"})
		return
	}
	courseID, err := uuid.Parse(courseIDStr)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if err := db.Select("id").First(&models.Course{}, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lessons"})
		return
	}

	var lessons []models.Lesson
	if err := db.Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Preload("ContentBlocks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC")
		}).
		Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lessons"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}
