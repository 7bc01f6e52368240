// Package testutil wires an in-memory database and a minimal app for
// controller and resolver tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	classModel "labadmin_backend/internals/features/classes/model"
	courseModel "labadmin_backend/internals/features/courses/model"
	expModel "labadmin_backend/internals/features/experiments/model"
	labModel "labadmin_backend/internals/features/labs/model"
	noticeModel "labadmin_backend/internals/features/notices/model"
	userModel "labadmin_backend/internals/features/users/model"
)

// OpenTestDB returns a fresh in-memory database with the full schema.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&userModel.UserModel{},
		&labModel.LabModel{},
		&labModel.ManageLabModel{},
		&classModel.ClassModel{},
		&classModel.ClassLocationModel{},
		&classModel.TeachingAssignmentModel{},
		&classModel.ClassCommentModel{},
		&courseModel.CourseModel{},
		&courseModel.CourseClassModel{},
		&courseModel.CourseEnrollmentModel{},
		&expModel.ExperimentModel{},
		&expModel.ExperimentImageModel{},
		&expModel.ExperimentFileModel{},
		&noticeModel.NoticeModel{},
		&noticeModel.NoticeContentModel{},
		&noticeModel.NoticeTagModel{},
		&noticeModel.NoticeContentTagModel{},
		&noticeModel.NoticeRowModel{},
		&noticeModel.NoticeCompletionModel{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewTestApp builds a fiber app whose requests run as the given identity,
// mirroring what the auth middleware would set.
func NewTestApp(userID, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("userRole", role)
		return c.Next()
	})
	return app
}

// SeedUser inserts a user row with the given id and role.
func SeedUser(t *testing.T, db *gorm.DB, userID, role string) {
	t.Helper()
	name := "User " + userID
	u := userModel.UserModel{UserID: userID, UserRole: role, UserRealName: &name}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
}
