package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	classModel "labadmin_backend/internals/features/classes/model"
	courseModel "labadmin_backend/internals/features/courses/model"
	noticeController "labadmin_backend/internals/features/notices/controller"
	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
	"labadmin_backend/internals/helpers/blob"
	"labadmin_backend/internals/testutil"
)

const (
	teacherID = "2000000001"
	studentID = "1000000001"
)

func mountNoticeRoutes(app *fiber.App, db *gorm.DB) {
	blobs := blob.NewMemoryService()
	noticeCtl := noticeController.NewNoticeController(db)
	relationCtl := noticeController.NewNoticeRelationController(db)
	completionCtl := noticeController.NewNoticeCompletionController(db)
	contentCtl := noticeController.NewNoticeContentController(db, blobs)

	app.Post("/api/notices", noticeCtl.Create)
	app.Get("/api/notices", noticeCtl.List)
	app.Post("/api/notices/rows", relationCtl.CreateRow)
	app.Post("/api/notices/tags", relationCtl.CreateTag)
	app.Post("/api/notices/content-tags", relationCtl.CreateContentTag)
	app.Post("/api/notices/completions", completionCtl.Create)
	app.Delete("/api/notices/contents/:id", contentCtl.Delete)
	app.Delete("/api/notices/:id", noticeCtl.Delete)
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
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

func seedNoticeWorld(t *testing.T, db *gorm.DB) (classID, noticeID uint) {
	t.Helper()
	testutil.SeedUser(t, db, teacherID, constants.RoleTeacher)
	testutil.SeedUser(t, db, studentID, constants.RoleStudent)

	class := classModel.ClassModel{ClassName: "Organic Chemistry 01", ClassStartTime: time.Now()}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	notice := noticeModel.NoticeModel{
		NoticeType:         noticeModel.NoticeTypeClass,
		NoticeClassOrLabID: class.ClassID,
		NoticeSenderID:     teacherID,
		NoticePostTime:     time.Now().Add(-time.Hour),
		NoticeEndTime:      time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&notice).Error; err != nil {
		t.Fatalf("seed notice: %v", err)
	}
	return class.ClassID, notice.NoticeID
}

func seedContent(t *testing.T, db *gorm.DB, text string) uint {
	t.Helper()
	ct := noticeModel.NoticeContentModel{NoticeContentType: noticeModel.ContentTypeText, NoticeContentText: text}
	if err := db.Create(&ct).Error; err != nil {
		t.Fatalf("seed content: %v", err)
	}
	return ct.NoticeContentID
}

// Rows added out of order come back sorted by order_num with resolved
// content and tags.
func TestNoticeRowOrderingRoundTrip(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, noticeID := seedNoticeWorld(t, db)

	app := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	mountNoticeRoutes(app, db)

	first := seedContent(t, db, "step one")
	second := seedContent(t, db, "step two")
	third := seedContent(t, db, "step three")

	// tag the middle content
	resp := doJSON(t, app, http.MethodPost, "/api/notices/tags", map[string]interface{}{"notice_tag_name": "safety"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create tag: got %d", resp.StatusCode)
	}
	var tag noticeModel.NoticeTagModel
	if err := db.Where("notice_tag_name = ?", "safety").First(&tag).Error; err != nil {
		t.Fatalf("reload tag: %v", err)
	}
	resp = doJSON(t, app, http.MethodPost, "/api/notices/content-tags", map[string]interface{}{
		"content_id": second, "tag_id": tag.NoticeTagID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("tag content: got %d", resp.StatusCode)
	}

	// insert rows in reverse display order
	for _, pair := range []struct {
		content  uint
		orderNum int
	}{{third, 30}, {first, 10}, {second, 20}} {
		resp := doJSON(t, app, http.MethodPost, "/api/notices/rows", map[string]interface{}{
			"notice_id": noticeID, "content_id": pair.content, "order_num": pair.orderNum,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add row (content %d): got %d", pair.content, resp.StatusCode)
		}
	}

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/notices?notice_id=%d", noticeID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: got %d", resp.StatusCode)
	}
	var details []noticeDTO.NoticeDetail
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d notices, want 1", len(details))
	}
	rows := details[0].Rows
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantTexts := []string{"step one", "step two", "step three"}
	for i, row := range rows {
		if row.Content.NoticeContentText != wantTexts[i] {
			t.Fatalf("row %d content = %q, want %q", i, row.Content.NoticeContentText, wantTexts[i])
		}
	}
	if len(rows[1].Tags) != 1 || rows[1].Tags[0].NoticeTagName != "safety" {
		t.Fatalf("row 1 tags = %v, want [safety]", rows[1].Tags)
	}
	if len(rows[0].Tags) != 0 {
		t.Fatalf("row 0 tags = %v, want empty", rows[0].Tags)
	}
}

func TestNoticeRowReferenceAndDuplicateErrors(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, noticeID := seedNoticeWorld(t, db)

	app := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	mountNoticeRoutes(app, db)

	content := seedContent(t, db, "only once")

	// missing notice and missing content are reference errors
	resp := doJSON(t, app, http.MethodPost, "/api/notices/rows", map[string]interface{}{
		"notice_id": 9999, "content_id": content, "order_num": 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing notice: got %d, want 400", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodPost, "/api/notices/rows", map[string]interface{}{
		"notice_id": noticeID, "content_id": 9999, "order_num": 1,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing content: got %d, want 400", resp.StatusCode)
	}

	// the same content twice in one notice is a conflict
	body := map[string]interface{}{"notice_id": noticeID, "content_id": content, "order_num": 1}
	if resp := doJSON(t, app, http.MethodPost, "/api/notices/rows", body); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first row: got %d", resp.StatusCode)
	}
	body["order_num"] = 2
	if resp := doJSON(t, app, http.MethodPost, "/api/notices/rows", body); resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate row: got %d, want 409", resp.StatusCode)
	}
}

// Marking a notice completed twice returns the same record, not a conflict.
func TestNoticeCompletionIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, noticeID := seedNoticeWorld(t, db)

	app := testutil.NewTestApp(studentID, constants.RoleStudent)
	mountNoticeRoutes(app, db)

	body := map[string]interface{}{"notice_id": noticeID}
	resp := doJSON(t, app, http.MethodPost, "/api/notices/completions", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first mark: got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, http.MethodPost, "/api/notices/completions", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second mark: got %d, want 200", resp.StatusCode)
	}

	var n int64
	db.Model(&noticeModel.NoticeCompletionModel{}).
		Where("notice_completion_notice_id = ? AND notice_completion_user_id = ?", noticeID, studentID).
		Count(&n)
	if n != 1 {
		t.Fatalf("completion rows = %d, want 1", n)
	}
}

// Deleting a notice removes rows and completions but leaves the shared
// content pool alone. Deleting a content cascades the rows pointing at it.
func TestNoticeAndContentDeleteCascades(t *testing.T) {
	db := testutil.OpenTestDB(t)
	_, noticeID := seedNoticeWorld(t, db)

	app := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	mountNoticeRoutes(app, db)

	content := seedContent(t, db, "shared body")
	doJSON(t, app, http.MethodPost, "/api/notices/rows", map[string]interface{}{
		"notice_id": noticeID, "content_id": content, "order_num": 1,
	})
	doJSON(t, app, http.MethodPost, "/api/notices/completions", map[string]interface{}{"notice_id": noticeID})

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notices/%d", noticeID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete notice: got %d", resp.StatusCode)
	}

	var rows, completions, contents int64
	db.Table("notice_row").Where("notice_row_notice_id = ?", noticeID).Count(&rows)
	db.Table("notice_completion").Where("notice_completion_notice_id = ?", noticeID).Count(&completions)
	db.Table("notice_content").Where("notice_content_id = ?", content).Count(&contents)
	if rows != 0 || completions != 0 {
		t.Fatalf("after notice delete: rows=%d completions=%d", rows, completions)
	}
	if contents != 1 {
		t.Fatalf("content rows = %d, want 1 (shared pool survives)", contents)
	}

	// now delete the content itself; a second notice's row must cascade
	_, secondNotice := seedNoticeWorldExtra(t, db)
	doJSON(t, app, http.MethodPost, "/api/notices/rows", map[string]interface{}{
		"notice_id": secondNotice, "content_id": content, "order_num": 1,
	})
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/notices/contents/%d", content), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete content: got %d", resp.StatusCode)
	}
	var orphanRows int64
	db.Table("notice_row").Where("notice_row_content_id = ?", content).Count(&orphanRows)
	if orphanRows != 0 {
		t.Fatalf("rows after content delete = %d, want 0", orphanRows)
	}
}

// Personal mode only surfaces notices whose target class is in scope.
func TestNoticeListPersonalScope(t *testing.T) {
	db := testutil.OpenTestDB(t)
	classID, noticeID := seedNoticeWorld(t, db)

	// enroll the student into a course linked to the class
	course := courseModel.CourseModel{CourseCode: "CHEM101", CourseSequence: "01", CourseDepartment: "Chemistry", CourseName: "Organic Chemistry"}
	if err := db.Create(&course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	mustSeedNotice(t, db,
		&courseModel.CourseClassModel{CourseClassCourseID: course.CourseID, CourseClassClassID: classID},
		&courseModel.CourseEnrollmentModel{CourseEnrollmentStudentID: studentID, CourseEnrollmentCourseID: course.CourseID},
	)

	// a second class the student does not reach, with its own notice
	other := classModel.ClassModel{ClassName: "Mechanics 01", ClassStartTime: time.Now()}
	mustSeedNotice(t, db, &other)
	mustSeedNotice(t, db, &noticeModel.NoticeModel{
		NoticeType:         noticeModel.NoticeTypeClass,
		NoticeClassOrLabID: other.ClassID,
		NoticeSenderID:     teacherID,
		NoticePostTime:     time.Now().Add(-time.Hour),
		NoticeEndTime:      time.Now().Add(24 * time.Hour),
	})

	app := testutil.NewTestApp(studentID, constants.RoleStudent)
	mountNoticeRoutes(app, db)

	resp := doJSON(t, app, http.MethodGet, "/api/notices?personal=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("personal list: got %d", resp.StatusCode)
	}
	var details []noticeDTO.NoticeDetail
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(details) != 1 || details[0].Notice.NoticeID != noticeID {
		t.Fatalf("personal list = %v, want only notice %d", details, noticeID)
	}
}

func seedNoticeWorldExtra(t *testing.T, db *gorm.DB) (classID, noticeID uint) {
	t.Helper()
	class := classModel.ClassModel{ClassName: "Extra Class", ClassStartTime: time.Now()}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	notice := noticeModel.NoticeModel{
		NoticeType:         noticeModel.NoticeTypeClass,
		NoticeClassOrLabID: class.ClassID,
		NoticeSenderID:     teacherID,
		NoticePostTime:     time.Now().Add(-time.Hour),
		NoticeEndTime:      time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(&notice).Error; err != nil {
		t.Fatalf("seed notice: %v", err)
	}
	return class.ClassID, notice.NoticeID
}

func mustSeedNotice(t *testing.T, db *gorm.DB, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}
