package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutorhub/tutoring-backend/config"
	"github.com/tutorhub/tutoring-backend/models"
	"github.com/tutorhub/tutoring-backend/routes"
	"github.com/tutorhub/tutoring-backend/services"
	"github.com/tutorhub/tutoring-backend/utils"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("cannot open sqlite: %v", err)
	}

	// A single connection keeps the in-memory database alive for the test.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("cannot get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func newTestRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret: testSecret,
		JWTTTL:    time.Hour,
	}
	uploader := services.NewUploader("http://storage.test", "key", "uploads")

	r := gin.New()
	return routes.SetupRouter(r, db, cfg, nil, uploader)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func studentToken(t *testing.T, id string) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, time.Hour, id, "student")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func tutorToken(t *testing.T, id string) string {
	t.Helper()
	token, err := utils.GenerateToken(testSecret, time.Hour, id, "tutor")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	return token
}

func seedTutor(t *testing.T, db *gorm.DB, name, email string) models.Tutor {
	t.Helper()
	tutor := models.Tutor{Name: name, Email: email}
	if err := db.Create(&tutor).Error; err != nil {
		t.Fatalf("seed tutor: %v", err)
	}
	return tutor
}

func seedStudent(t *testing.T, db *gorm.DB, name, email string) models.Student {
	t.Helper()
	student := models.Student{Name: name, Email: email}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return student
}

func seedCourse(t *testing.T, db *gorm.DB, tutor models.Tutor, title string) models.Course {
	t.Helper()
	course := models.Course{Title: title, TutorID: tutor.ID}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func seedLesson(t *testing.T, db *gorm.DB, course models.Course, title string, order int) models.Lesson {
	t.Helper()
	lesson := models.Lesson{Title: title, Order: order, CourseID: course.ID}
	if err := db.Create(&lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return lesson
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("unexpected status: got=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}
