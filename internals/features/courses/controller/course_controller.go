// internals/features/courses/controller/course_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseDTO "labadmin_backend/internals/features/courses/dto"
	courseModel "labadmin_backend/internals/features/courses/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
	"labadmin_backend/internals/scope"
)

type CourseController struct{ DB *gorm.DB }

func NewCourseController(db *gorm.DB) *CourseController { return &CourseController{DB: db} }

var validateCourse = validator.New()

// ===================== CREATE =====================
// POST /api/courses
func (h *CourseController) Create(c *fiber.Ctx) error {
	var req courseDTO.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateCourse.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Course with this code and sequence already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}
	return helper.JsonCreated(c, "Course created successfully.", m)
}

// ===================== LIST =====================
// GET /api/courses?course_id=&course_name=&personal=
// Filters compose by intersection.
func (h *CourseController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&courseModel.CourseModel{})

	if raw := strings.TrimSpace(c.Query("course_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
		}
		tx = tx.Where("course_id = ?", id)
	}
	if name := strings.TrimSpace(c.Query("course_name")); name != "" {
		tx = tx.Where("LOWER(course_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if strings.EqualFold(c.Query("personal"), "true") {
		userID, err := helperAuth.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		role, err := helperAuth.GetRoleFromLocals(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}
		ids, err := scope.Resolve(h.DB, role, userID, scope.KindCourse)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve personal scope")
		}
		// an empty relationship chain filters everything out
		if len(ids) == 0 {
			return helper.JsonList(c, []courseModel.CourseModel{})
		}
		tx = tx.Where("course_id IN ?", ids)
	}

	var courses []courseModel.CourseModel
	if err := tx.Order("course_id ASC").Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}
	return helper.JsonList(c, courses)
}

// ===================== UPDATE =====================
// PATCH /api/courses
// Addressed by the (course_code, course_sequence) natural key; both key
// fields are required and must match an existing row exactly.
func (h *CourseController) Update(c *fiber.Ctx) error {
	var req courseDTO.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateCourse.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	key := req.Key()
	var existing courseModel.CourseModel
	if err := h.DB.Where("course_code = ? AND course_sequence = ?", key.Code, key.Sequence).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	updates := map[string]interface{}{}
	if req.CourseDepartment != nil {
		updates["course_department"] = strings.TrimSpace(*req.CourseDepartment)
	}
	if req.CourseName != nil {
		updates["course_name"] = strings.TrimSpace(*req.CourseName)
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "No changes", existing)
	}

	if err := h.DB.Model(&courseModel.CourseModel{}).
		Where("course_id = ?", existing.CourseID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}

	var after courseModel.CourseModel
	if err := h.DB.Where("course_id = ?", existing.CourseID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Course updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Course updated successfully.", after)
}

// ===================== DELETE =====================
// DELETE /api/courses?course_code=&course_sequence=
// Cascades class links and enrollments.
func (h *CourseController) Delete(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("course_code"))
	sequence := strings.TrimSpace(c.Query("course_sequence"))
	if code == "" || sequence == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_code and course_sequence parameters are required")
	}

	var existing courseModel.CourseModel
	if err := h.DB.Where("course_code = ? AND course_sequence = ?", code, sequence).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_class_course_id = ?", existing.CourseID).
			Delete(&courseModel.CourseClassModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_enrollment_course_id = ?", existing.CourseID).
			Delete(&courseModel.CourseEnrollmentModel{}).Error; err != nil {
			return err
		}
		return tx.Where("course_id = ?", existing.CourseID).Delete(&courseModel.CourseModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}

	return helper.JsonDeleted(c, "Course deleted successfully.", fiber.Map{
		"course_id":       existing.CourseID,
		"course_code":     existing.CourseCode,
		"course_sequence": existing.CourseSequence,
	})
}
