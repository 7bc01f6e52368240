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
	classController "labadmin_backend/internals/features/classes/controller"
	classModel "labadmin_backend/internals/features/classes/model"
	labModel "labadmin_backend/internals/features/labs/model"
	noticeModel "labadmin_backend/internals/features/notices/model"
	"labadmin_backend/internals/testutil"
)

const (
	teacherID = "2000000001"
	studentID = "1000000001"
	otherID   = "1000000002"
)

func mountClassRoutes(app *fiber.App, db *gorm.DB) {
	ctl := classController.NewClassController(db)
	commentCtl := classController.NewClassCommentController(db)
	app.Post("/api/classes", ctl.Create)
	app.Get("/api/classes", ctl.List)
	app.Delete("/api/classes/comments/:id", commentCtl.Delete)
	app.Post("/api/classes/comments", commentCtl.Create)
	app.Delete("/api/classes/:id", ctl.Delete)
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

func seedClassWorld(t *testing.T, db *gorm.DB) (classID uint) {
	t.Helper()
	testutil.SeedUser(t, db, teacherID, constants.RoleTeacher)
	testutil.SeedUser(t, db, studentID, constants.RoleStudent)
	testutil.SeedUser(t, db, otherID, constants.RoleStudent)

	class := classModel.ClassModel{ClassName: "Organic Chemistry 01", ClassStartTime: time.Now()}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return class.ClassID
}

// Deleting a class removes its whole subtree: locations, assignments,
// comments and class notices with their rows and completions.
func TestClassDeleteCascades(t *testing.T) {
	db := testutil.OpenTestDB(t)
	classID := seedClassWorld(t, db)

	lab := labModel.LabModel{LabName: "Chemistry Lab", LabLocation: "Building 1"}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatalf("seed lab: %v", err)
	}
	mustSeed(t, db,
		&classModel.ClassLocationModel{ClassLocationClassID: classID, ClassLocationLabID: lab.LabID},
		&classModel.TeachingAssignmentModel{TeachingAssignmentTeacherID: teacherID, TeachingAssignmentClassID: classID},
		&classModel.ClassCommentModel{ClassCommentClassID: classID, ClassCommentSenderID: studentID, ClassCommentContent: "hi"},
	)

	notice := noticeModel.NoticeModel{
		NoticeType:         noticeModel.NoticeTypeClass,
		NoticeClassOrLabID: classID,
		NoticeSenderID:     teacherID,
		NoticePostTime:     time.Now(),
		NoticeEndTime:      time.Now().Add(24 * time.Hour),
	}
	mustSeed(t, db, &notice)
	content := noticeModel.NoticeContentModel{NoticeContentType: noticeModel.ContentTypeText, NoticeContentText: "read this"}
	mustSeed(t, db, &content)
	mustSeed(t, db,
		&noticeModel.NoticeRowModel{NoticeRowNoticeID: notice.NoticeID, NoticeRowContentID: content.NoticeContentID, NoticeRowOrderNum: 1},
		&noticeModel.NoticeCompletionModel{NoticeCompletionNoticeID: notice.NoticeID, NoticeCompletionUserID: studentID, NoticeCompletionCompletionTime: time.Now()},
	)

	app := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	mountClassRoutes(app, db)

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/classes/%d", classID), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete class: got %d", resp.StatusCode)
	}

	for table, where := range map[string]string{
		"classes":             "class_id",
		"class_location":      "class_location_class_id",
		"teaching_assignment": "teaching_assignment_class_id",
		"class_comment":       "class_comment_class_id",
	} {
		var n int64
		db.Table(table).Where(where+" = ?", classID).Count(&n)
		if n != 0 {
			t.Fatalf("%s rows after delete = %d, want 0", table, n)
		}
	}
	var notices, rows, completions int64
	db.Table("notice").Where("notice_id = ?", notice.NoticeID).Count(&notices)
	db.Table("notice_row").Where("notice_row_notice_id = ?", notice.NoticeID).Count(&rows)
	db.Table("notice_completion").Where("notice_completion_notice_id = ?", notice.NoticeID).Count(&completions)
	if notices != 0 || rows != 0 || completions != 0 {
		t.Fatalf("notice subtree after delete: notices=%d rows=%d completions=%d", notices, rows, completions)
	}

	// the shared content pool is untouched
	var contents int64
	db.Table("notice_content").Where("notice_content_id = ?", content.NoticeContentID).Count(&contents)
	if contents != 1 {
		t.Fatalf("content rows after delete = %d, want 1", contents)
	}
}

// A comment may be deleted by its sender or by staff; other users get 403.
func TestClassCommentDeleteAuthorization(t *testing.T) {
	db := testutil.OpenTestDB(t)
	classID := seedClassWorld(t, db)

	senderApp := testutil.NewTestApp(studentID, constants.RoleStudent)
	otherApp := testutil.NewTestApp(otherID, constants.RoleStudent)
	staffApp := testutil.NewTestApp(teacherID, constants.RoleTeacher)
	for _, app := range []*fiber.App{senderApp, otherApp, staffApp} {
		mountClassRoutes(app, db)
	}

	post := func() uint {
		resp := doJSON(t, senderApp, http.MethodPost, "/api/classes/comments", map[string]interface{}{
			"class_id": classID,
			"content":  "question about lab 3",
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("post comment: got %d", resp.StatusCode)
		}
		var comment classModel.ClassCommentModel
		if err := db.Order("class_comment_id DESC").First(&comment).Error; err != nil {
			t.Fatalf("reload comment: %v", err)
		}
		return comment.ClassCommentID
	}

	// a stranger cannot delete it, and the comment survives
	id := post()
	resp := doJSON(t, otherApp, http.MethodDelete, fmt.Sprintf("/api/classes/comments/%d", id), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("stranger delete: got %d, want 403", resp.StatusCode)
	}
	var n int64
	db.Table("class_comment").Where("class_comment_id = ?", id).Count(&n)
	if n != 1 {
		t.Fatalf("comment deleted by stranger")
	}

	// the sender can
	resp = doJSON(t, senderApp, http.MethodDelete, fmt.Sprintf("/api/classes/comments/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sender delete: got %d", resp.StatusCode)
	}

	// staff can delete someone else's comment
	id = post()
	resp = doJSON(t, staffApp, http.MethodDelete, fmt.Sprintf("/api/classes/comments/%d", id), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("staff delete: got %d", resp.StatusCode)
	}

	// deleting a gone comment is 404, not 403
	resp = doJSON(t, otherApp, http.MethodDelete, fmt.Sprintf("/api/classes/comments/%d", id), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("delete missing: got %d, want 404", resp.StatusCode)
	}
}

// Personal listing for a student with no enrollments is an empty array, not
// the full table.
func TestClassListPersonalEmptyScope(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seedClassWorld(t, db)

	app := testutil.NewTestApp(studentID, constants.RoleStudent)
	mountClassRoutes(app, db)

	resp := doJSON(t, app, http.MethodGet, "/api/classes?personal=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("personal list: got %d", resp.StatusCode)
	}
	var out []classModel.ClassModel
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("personal list for unenrolled student = %d rows, want 0", len(out))
	}
}

func mustSeed(t *testing.T, db *gorm.DB, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}
