package controller_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	courseController "labadmin_backend/internals/features/courses/controller"
	courseModel "labadmin_backend/internals/features/courses/model"
	"labadmin_backend/internals/testutil"
)

const teacherID = "2000000001"

func newCourseApp(t *testing.T) (*gorm.DB, func(method, target string, body interface{}) *http.Response) {
	t.Helper()
	db := testutil.OpenTestDB(t)
	testutil.SeedUser(t, db, teacherID, constants.RoleTeacher)

	app := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	ctl := courseController.NewCourseController(db)
	relCtl := courseController.NewCourseRelationController(db)
	app.Post("/api/courses", ctl.Create)
	app.Get("/api/courses", ctl.List)
	app.Patch("/api/courses", ctl.Update)
	app.Delete("/api/courses", ctl.Delete)
	app.Post("/api/courses/enrollments", relCtl.Enroll)

	do := func(method, target string, body interface{}) *http.Response {
		var buf bytes.Buffer
		if body != nil {
			if err := json.NewEncoder(&buf).Encode(body); err != nil {
				t.Fatalf("encode body: %v", err)
			}
		}
		req := httptest.NewRequest(method, target, &buf)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("%s %s: %v", method, target, err)
		}
		return resp
	}
	return db, do
}

func TestCourseCompositeKeyConflict(t *testing.T) {
	_, do := newCourseApp(t)

	payload := map[string]interface{}{
		"course_code":       "CHEM101",
		"course_sequence":   "01",
		"course_department": "Chemistry",
		"course_name":       "Organic Chemistry",
	}
	if resp := do(http.MethodPost, "/api/courses", payload); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first create: got %d", resp.StatusCode)
	}

	// same code, different sequence: allowed
	second := map[string]interface{}{
		"course_code":       "CHEM101",
		"course_sequence":   "02",
		"course_department": "Chemistry",
		"course_name":       "Organic Chemistry",
	}
	if resp := do(http.MethodPost, "/api/courses", second); resp.StatusCode != http.StatusCreated {
		t.Fatalf("second sequence create: got %d", resp.StatusCode)
	}

	// exact composite duplicate: conflict
	if resp := do(http.MethodPost, "/api/courses", payload); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate create: got %d, want 409", resp.StatusCode)
	}
}

func TestCoursePatchByNaturalKey(t *testing.T) {
	db, do := newCourseApp(t)

	create := map[string]interface{}{
		"course_code":       "PHYS101",
		"course_sequence":   "01",
		"course_department": "Physics",
		"course_name":       "Mechanics",
	}
	if resp := do(http.MethodPost, "/api/courses", create); resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}

	newName := "Classical Mechanics"
	patch := map[string]interface{}{
		"course_code":     "PHYS101",
		"course_sequence": "01",
		"course_name":     newName,
	}
	if resp := do(http.MethodPatch, "/api/courses", patch); resp.StatusCode != http.StatusOK {
		t.Fatalf("patch: got %d", resp.StatusCode)
	}

	var after courseModel.CourseModel
	if err := db.Where("course_code = ? AND course_sequence = ?", "PHYS101", "01").First(&after).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.CourseName != newName {
		t.Fatalf("course_name = %q, want %q", after.CourseName, newName)
	}

	// wrong sequence must be a miss, not a fuzzy match on code
	miss := map[string]interface{}{
		"course_code":     "PHYS101",
		"course_sequence": "99",
		"course_name":     "Should Not Apply",
	}
	if resp := do(http.MethodPatch, "/api/courses", miss); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("patch missing sequence: got %d, want 404", resp.StatusCode)
	}

	// key fields are mandatory
	incomplete := map[string]interface{}{"course_code": "PHYS101", "course_name": "Nope"}
	if resp := do(http.MethodPatch, "/api/courses", incomplete); resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("patch without sequence: got %d, want 422", resp.StatusCode)
	}
}

func TestCourseDeleteCascades(t *testing.T) {
	db, do := newCourseApp(t)

	create := map[string]interface{}{
		"course_code":       "BIO101",
		"course_sequence":   "01",
		"course_department": "Biology",
		"course_name":       "Cell Biology",
	}
	if resp := do(http.MethodPost, "/api/courses", create); resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	var course courseModel.CourseModel
	if err := db.Where("course_code = ?", "BIO101").First(&course).Error; err != nil {
		t.Fatalf("reload course: %v", err)
	}

	const studentID = "1000000002"
	testutil.SeedUser(t, db, studentID, constants.RoleStudent)
	enroll := map[string]interface{}{
		"course_id":   course.CourseID,
		"student_ids": []string{studentID},
	}
	if resp := do(http.MethodPost, "/api/courses/enrollments", enroll); resp.StatusCode != http.StatusCreated {
		t.Fatalf("enroll: got %d", resp.StatusCode)
	}

	if resp := do(http.MethodDelete, "/api/courses?course_code=BIO101&course_sequence=01", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: got %d", resp.StatusCode)
	}

	var enrollments int64
	db.Model(&courseModel.CourseEnrollmentModel{}).
		Where("course_enrollment_course_id = ?", course.CourseID).
		Count(&enrollments)
	if enrollments != 0 {
		t.Fatalf("enrollments after delete = %d, want 0", enrollments)
	}
}

func TestEnrollRejectsNonStudents(t *testing.T) {
	db, do := newCourseApp(t)

	create := map[string]interface{}{
		"course_code":       "MATH101",
		"course_sequence":   "01",
		"course_department": "Mathematics",
		"course_name":       "Calculus",
	}
	if resp := do(http.MethodPost, "/api/courses", create); resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d", resp.StatusCode)
	}
	var course courseModel.CourseModel
	if err := db.Where("course_code = ?", "MATH101").First(&course).Error; err != nil {
		t.Fatalf("reload course: %v", err)
	}

	// the teacher account cannot be enrolled as a student
	enroll := map[string]interface{}{
		"course_id":   course.CourseID,
		"student_ids": []string{teacherID},
	}
	if resp := do(http.MethodPost, "/api/courses/enrollments", enroll); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("enroll teacher: got %d, want 400", resp.StatusCode)
	}

	const studentID = "1000000003"
	testutil.SeedUser(t, db, studentID, constants.RoleStudent)
	ok := map[string]interface{}{
		"course_id":   course.CourseID,
		"student_ids": []string{studentID},
	}
	if resp := do(http.MethodPost, "/api/courses/enrollments", ok); resp.StatusCode != http.StatusCreated {
		t.Fatalf("enroll student: got %d", resp.StatusCode)
	}
	// and again: conflict on the duplicate pair
	if resp := do(http.MethodPost, "/api/courses/enrollments", ok); resp.StatusCode != http.StatusConflict {
		t.Fatalf("re-enroll: got %d, want 409", resp.StatusCode)
	}
}
