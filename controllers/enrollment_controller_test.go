package controllers_test

import (
	"net/http"
	"testing"

	"github.com/tutorhub/tutoring-backend/models"
)

func TestEnrollCreatesOneRowPerLesson(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	tutor := seedTutor(t, db, "Tina", "tina@x.com")
	student := seedStudent(t, db, "Sam", "sam@x.com")
	course := seedCourse(t, db, tutor, "Algebra")
	seedLesson(t, db, course, "L1", 0)
	seedLesson(t, db, course, "L2", 1)
	seedLesson(t, db, course, "L3", 2)

	rec := doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusCreated)

	var rows []models.StudentLessonProgress
	if err := db.Where("student_id = ?", student.ID).Find(&rows).Error; err != nil {
		t.Fatalf("fetch progress: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 progress rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Completed || row.CompletedAt != nil {
			t.Fatalf("expected fresh rows to be incomplete: %+v", row)
		}
	}

	// Re-enrolling conflicts and creates nothing.
	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusConflict)

	var count int64
	db.Model(&models.StudentLessonProgress{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 3 {
		t.Fatalf("re-enroll must not create rows, got %d", count)
	}
}

func TestEnrollValidation(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	tutor := seedTutor(t, db, "Tina", "tina@x.com")
	student := seedStudent(t, db, "Sam", "sam@x.com")
	empty := seedCourse(t, db, tutor, "Empty")

	rec := doJSON(t, r, http.MethodPost, "/api/courses/"+empty.ID.String()+"/enroll", map[string]string{}, "")
	mustStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+empty.ID.String()+"/enroll", map[string]string{
		"studentId": "00000000-0000-0000-0000-000000000000",
	}, "")
	mustStatus(t, rec, http.StatusNotFound)

	rec = doJSON(t, r, http.MethodPost, "/api/courses/00000000-0000-0000-0000-000000000000/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusNotFound)

	// A course with no lessons rejects enrollment and creates no rows.
	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+empty.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusBadRequest)

	var count int64
	db.Model(&models.StudentLessonProgress{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no progress rows, got %d", count)
	}
}

func TestLessonsAddedAfterEnrollmentAreNotRetroEnrolled(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	tutor := seedTutor(t, db, "Tina", "tina@x.com")
	student := seedStudent(t, db, "Sam", "sam@x.com")
	course := seedCourse(t, db, tutor, "Algebra")
	seedLesson(t, db, course, "L1", 0)

	rec := doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusCreated)

	late := seedLesson(t, db, course, "Late", 1)

	var count int64
	db.Model(&models.StudentLessonProgress{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 progress row, got %d", count)
	}

	// The late lesson has no progress row, so completing it 404s.
	rec = doJSON(t, r, http.MethodPut, "/api/lessons/"+late.ID.String()+"/progress", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusNotFound)

	// Re-enrolling after the course gained a lesson still conflicts and must
	// not slip a progress row in for the late lesson.
	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusConflict)

	db.Model(&models.StudentLessonProgress{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 1 {
		t.Fatalf("re-enroll must not retro-enroll late lessons, got %d rows", count)
	}
	var lateRows int64
	db.Model(&models.StudentLessonProgress{}).Where("student_id = ? AND lesson_id = ?", student.ID, late.ID).Count(&lateRows)
	if lateRows != 0 {
		t.Fatalf("expected no progress row for the late lesson, got %d", lateRows)
	}
}

func TestUpdateLessonProgress(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	tutor := seedTutor(t, db, "Tina", "tina@x.com")
	student := seedStudent(t, db, "Sam", "sam@x.com")
	course := seedCourse(t, db, tutor, "Algebra")
	lesson := seedLesson(t, db, course, "L1", 0)

	// Not enrolled yet.
	rec := doJSON(t, r, http.MethodPut, "/api/lessons/"+lesson.ID.String()+"/progress", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusNotFound)

	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID.String()+"/enroll", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusCreated)

	rec = doJSON(t, r, http.MethodPut, "/api/lessons/"+lesson.ID.String()+"/progress", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusOK)

	var progress struct {
		Completed   bool    `json:"completed"`
		CompletedAt *string `json:"completedAt"`
	}
	decodeBody(t, rec, &progress)
	if !progress.Completed || progress.CompletedAt == nil {
		t.Fatalf("expected completed progress with timestamp, got %+v", progress)
	}

	rec = doJSON(t, r, http.MethodPut, "/api/lessons/"+lesson.ID.String()+"/progress", map[string]string{}, "")
	mustStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, r, http.MethodPut, "/api/lessons/00000000-0000-0000-0000-000000000000/progress", map[string]string{
		"studentId": student.ID.String(),
	}, "")
	mustStatus(t, rec, http.StatusNotFound)
}

func TestCreateFlashcard(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	tutor := seedTutor(t, db, "Tina", "tina@x.com")
	student := seedStudent(t, db, "Sam", "sam@x.com")
	course := seedCourse(t, db, tutor, "Algebra")
	lesson := seedLesson(t, db, course, "L1", 0)
	path := "/api/lessons/" + lesson.ID.String() + "/flashcards"

	rec := doJSON(t, r, http.MethodPost, path, map[string]string{
		"studentId": student.ID.String(), "front": "Q", "back": "A",
	}, "")
	mustStatus(t, rec, http.StatusCreated)

	var card struct {
		Front         string `json:"front"`
		IsAIGenerated bool   `json:"isAiGenerated"`
	}
	decodeBody(t, rec, &card)
	if card.Front != "Q" || card.IsAIGenerated {
		t.Fatalf("unexpected flashcard: %+v", card)
	}

	rec = doJSON(t, r, http.MethodPost, path, map[string]string{
		"studentId": student.ID.String(), "front": "Q",
	}, "")
	mustStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, r, http.MethodPost, path, map[string]string{
		"front": "Q", "back": "A",
	}, "")
	mustStatus(t, rec, http.StatusBadRequest)

	rec = doJSON(t, r, http.MethodPost, path, map[string]string{
		"studentId": "00000000-0000-0000-0000-000000000000", "front": "Q", "back": "A",
	}, "")
	mustStatus(t, rec, http.StatusNotFound)
}
