package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorhub/tutoring-backend/middleware"
	"github.com/tutorhub/tutoring-backend/models"
	"github.com/tutorhub/tutoring-backend/utils"
)

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type IssueTokenInput struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// CreateTutor registers a tutor and issues a signed token for it. Duplicate
// emails are caught by the unique index, not by a pre-read.
func CreateTutor(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}

		tutor := models.Tutor{Name: input.Name, Email: input.Email}
		if err := db.Create(&tutor).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use by a tutor"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tutor"})
			return
		}

		token, err := utils.GenerateToken(secret, ttl, tutor.ID.String(), middleware.RoleTutor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tutor"})
			return
		}

		c.JSON(http.StatusCreated, struct {
			models.Tutor
			Token string `json:"token"`
		}{tutor, token})
	}
}

func GetTutor(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tutor not found"})
		return
	}

	var tutor models.Tutor
	if err := db.First(&tutor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tutor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tutor"})
		return
	}
	c.JSON(http.StatusOK, tutor)
}

func CreateStudent(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input CreateUserInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" || input.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}

		student := models.Student{Name: input.Name, Email: input.Email}
		if err := db.Create(&student).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already in use by a student"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
			return
		}

		token, err := utils.GenerateToken(secret, ttl, student.ID.String(), middleware.RoleStudent)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create student"})
			return
		}

		c.JSON(http.StatusCreated, struct {
			models.Student
			Token string `json:"token"`
		}{student, token})
	}
}

func GetStudent(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	var student models.Student
	if err := db.First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve student"})
		return
	}
	c.JSON(http.StatusOK, student)
}

// SearchUserByEmail tries tutors first, then students, and tags the match
// with its role.
func SearchUserByEmail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email query parameter is required"})
		return
	}

	var tutor models.Tutor
	err := db.First(&tutor, "email = ?", email).Error
	if err == nil {
		c.JSON(http.StatusOK, struct {
			models.Tutor
			Role string `json:"role"`
		}{tutor, middleware.RoleTutor})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform user search"})
		return
	}

	var student models.Student
	err = db.First(&student, "email = ?", email).Error
	if err == nil {
		c.JSON(http.StatusOK, struct {
			models.Student
			Role string `json:"role"`
		}{student, middleware.RoleStudent})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform user search"})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "User not found with that email"})
}

// IssueToken re-issues a signed token for an existing tutor or student.
func IssueToken(secret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		db := c.MustGet("db").(*gorm.DB)

		var input IssueTokenInput
		if err := c.ShouldBindJSON(&input); err != nil || input.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id and role are required"})
			return
		}
		if input.Role != middleware.RoleStudent && input.Role != middleware.RoleTutor {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be student or tutor"})
			return
		}

		id, err := uuid.Parse(input.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var lookupErr error
		if input.Role == middleware.RoleTutor {
			lookupErr = db.Select("id").First(&models.Tutor{}, "id = ?", id).Error
		} else {
			lookupErr = db.Select("id").First(&models.Student{}, "id = ?", id).Error
		}
		if lookupErr != nil {
			if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}

		token, err := utils.GenerateToken(secret, ttl, id.String(), input.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
