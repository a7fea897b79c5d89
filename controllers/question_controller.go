package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tutorhub/tutoring-backend/middleware"
	"github.com/tutorhub/tutoring-backend/models"
	"github.com/tutorhub/tutoring-backend/ws"
)

type StudentSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type QuestionResponse struct {
	models.Question
	Student     StudentSummary `json:"student"`
	AnswerCount int64          `json:"answerCount"`
}

type AnswerResponse struct {
	models.Answer
	Student *StudentSummary `json:"student"`
	Tutor   *TutorSummary   `json:"tutor"`
}

type CreateQuestionInput struct {
	Title *string `json:"title"`
	Body  string  `json:"body"`
}

type CreateAnswerInput struct {
	Body string `json:"body"`
}

// GetQuestions lists a lesson's questions oldest-first with the asking
// student and the answer count.
func GetQuestions(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonIDStr := c.Query("lessonId")
	if lessonIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lessonId query parameter is required"})
		return
	}
	lessonID, err := uuid.Parse(lessonIDStr)
	if err != nil {
		// An unknown lesson just has no questions.
		c.JSON(http.StatusOK, []QuestionResponse{})
		return
	}

	var questions []models.Question
	if err := db.Where("lesson_id = ?", lessonID).
		Order("created_at ASC").
		Preload("Student").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve questions"})
		return
	}

	countByQuestion := make(map[uuid.UUID]int64, len(questions))
	if len(questions) > 0 {
		questionIDs := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			questionIDs = append(questionIDs, q.ID)
		}

		type answerCount struct {
			QuestionID uuid.UUID
			Count      int64
		}
		var counts []answerCount
		if err := db.Model(&models.Answer{}).
			Select("question_id, COUNT(*) AS count").
			Where("question_id IN ?", questionIDs).
			Group("question_id").
			Scan(&counts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve questions"})
			return
		}
		for _, ac := range counts {
			countByQuestion[ac.QuestionID] = ac.Count
		}
	}

	resp := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, QuestionResponse{
			Question:    q,
			Student:     StudentSummary{ID: q.Student.ID, Name: q.Student.Name},
			AnswerCount: countByQuestion[q.ID],
		})
	}
	c.JSON(http.StatusOK, resp)
}

// GetAnswers lists a question's answers oldest-first with the author summary,
// which is a student or a tutor, never both.
func GetAnswers(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err := db.Select("id").First(&models.Question{}, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve answers"})
		return
	}

	var answers []models.Answer
	if err := db.Where("question_id = ?", questionID).
		Order("created_at ASC").
		Preload("Student").
		Preload("Tutor").
		Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve answers"})
		return
	}

	resp := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		ar := AnswerResponse{Answer: a}
		if a.Student != nil {
			ar.Student = &StudentSummary{ID: a.Student.ID, Name: a.Student.Name}
		}
		if a.Tutor != nil {
			ar.Tutor = &TutorSummary{ID: a.Tutor.ID, Name: a.Tutor.Name}
		}
		resp = append(resp, ar)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateQuestion requires a student identity. The one-question-per-lesson
// rule rides on the composite unique index; a conflicting insert affects
// zero rows.
func CreateQuestion(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	role := c.GetString("role")
	if role != middleware.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Only students can post questions."})
		return
	}
	studentID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Only students can post questions."})
		return
	}

	var input CreateQuestionInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question body is required"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post question"})
		return
	}

	question := models.Question{
		Title:     input.Title,
		Body:      input.Body,
		LessonID:  lessonID,
		StudentID: studentID,
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&question)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post question"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already posted a question for this lesson."})
		return
	}

	var student models.Student
	if err := db.First(&student, "id = ?", studentID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post question"})
		return
	}
	c.JSON(http.StatusCreated, QuestionResponse{
		Question: question,
		Student:  StudentSummary{ID: student.ID, Name: student.Name},
	})
}

// CreateAnswer accepts any authenticated identity and sets exactly the
// author field matching the caller's role.
func CreateAnswer(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	role := c.GetString("role")
	if role == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required to post an answer."})
		return
	}
	authorID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required to post an answer."})
		return
	}

	var input CreateAnswerInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer body is required"})
		return
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}
	if err := db.Select("id").First(&models.Question{}, "id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post answer"})
		return
	}

	answer := models.Answer{
		Body:       input.Body,
		QuestionID: questionID,
	}
	if role == middleware.RoleStudent {
		answer.StudentID = &authorID
	} else {
		answer.TutorID = &authorID
	}
	if err := db.Create(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post answer"})
		return
	}

	resp := AnswerResponse{Answer: answer}
	if answer.StudentID != nil {
		var student models.Student
		if err := db.First(&student, "id = ?", *answer.StudentID).Error; err == nil {
			resp.Student = &StudentSummary{ID: student.ID, Name: student.Name}
		}
	}
	if answer.TutorID != nil {
		var tutor models.Tutor
		if err := db.First(&tutor, "id = ?", *answer.TutorID).Error; err == nil {
			resp.Tutor = &TutorSummary{ID: tutor.ID, Name: tutor.Name}
		}
	}

	ws.NotifyNewAnswer(questionID.String(), answer.ID.String())

	c.JSON(http.StatusCreated, resp)
}
