package controllers_test

import (
	"net/http"
	"testing"
)

// Full lifecycle through the real router: register, author a course, enroll,
// complete a lesson.
func TestEnrollmentScenario(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	rec := doJSON(t, r, http.MethodPost, "/api/students", map[string]string{
		"name": "A", "email": "a@x.com",
	}, "")
	mustStatus(t, rec, http.StatusCreated)
	var student struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &student)

	rec = doJSON(t, r, http.MethodPost, "/api/tutors", map[string]string{
		"name": "T", "email": "t@x.com",
	}, "")
	mustStatus(t, rec, http.StatusCreated)
	var tutor struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &tutor)

	rec = doJSON(t, r, http.MethodPost, "/api/courses", map[string]string{
		"title": "C", "tutorId": tutor.ID,
	}, "")
	mustStatus(t, rec, http.StatusCreated)
	var course struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &course)

	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID+"/lessons", map[string]interface{}{
		"title": "L1", "order": 0,
	}, "")
	mustStatus(t, rec, http.StatusCreated)
	var lesson struct {
		ID string `json:"id"`
	}
	decodeBody(t, rec, &lesson)

	rec = doJSON(t, r, http.MethodPost, "/api/courses/"+course.ID+"/enroll", map[string]string{
		"studentId": student.ID,
	}, "")
	mustStatus(t, rec, http.StatusCreated)
	var enrolled struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &enrolled)
	if enrolled.Message != "Successfully enrolled in course." {
		t.Fatalf("unexpected enrollment message: %q", enrolled.Message)
	}

	rec = doJSON(t, r, http.MethodPut, "/api/lessons/"+lesson.ID+"/progress", map[string]string{
		"studentId": student.ID,
	}, "")
	mustStatus(t, rec, http.StatusOK)
	var progress struct {
		Completed bool `json:"completed"`
	}
	decodeBody(t, rec, &progress)
	if !progress.Completed {
		t.Fatalf("expected lesson to be completed")
	}
}

func TestHealthEndpoint(t *testing.T) {
	db := newTestDB(t)
	r := newTestRouter(t, db)

	rec := doJSON(t, r, http.MethodGet, "/health", nil, "")
	mustStatus(t, rec, http.StatusOK)

	var health struct {
		Status string `json:"status"`
		DB     string `json:"db"`
	}
	decodeBody(t, rec, &health)
	if health.Status != "ok" || health.DB != "ok" {
		t.Fatalf("unexpected health payload: %+v", health)
	}
}
