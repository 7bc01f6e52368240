package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	courseDTO "labadmin_backend/internals/features/courses/dto"
	courseModel "labadmin_backend/internals/features/courses/model"
	userModel "labadmin_backend/internals/features/users/model"
	helper "labadmin_backend/internals/helpers"
)

// CourseRelationController handles student enrollments and course→class links.
type CourseRelationController struct{ DB *gorm.DB }

func NewCourseRelationController(db *gorm.DB) *CourseRelationController {
	return &CourseRelationController{DB: db}
}

// ===================== ENROLLMENTS =====================

// POST /api/courses/enrollments
// Enrolls a batch of students into one course. Every listed user must exist
// and carry the student role; the whole batch is committed or rejected.
func (h *CourseRelationController) Enroll(c *fiber.Ctx) error {
	var req courseDTO.EnrollStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateCourse.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var courseCount int64
	if err := h.DB.Table("course").Where("course_id = ?", req.CourseID).Count(&courseCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate course")
	}
	if courseCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Course not found")
	}

	var students []userModel.UserModel
	if err := h.DB.Where("user_id IN ?", req.StudentIDs).Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate students")
	}
	found := make(map[string]string, len(students))
	for _, s := range students {
		found[s.UserID] = s.UserRole
	}
	for _, id := range req.StudentIDs {
		role, ok := found[id]
		if !ok {
			return helper.JsonError(c, fiber.StatusBadRequest, "Student "+id+" not found")
		}
		if role != constants.RoleStudent {
			return helper.JsonError(c, fiber.StatusBadRequest, "User "+id+" is not a student")
		}
	}

	rows := make([]courseModel.CourseEnrollmentModel, 0, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		rows = append(rows, courseModel.CourseEnrollmentModel{
			CourseEnrollmentStudentID: id,
			CourseEnrollmentCourseID:  req.CourseID,
		})
	}
	if err := h.DB.Create(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "One or more students are already enrolled in this course")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to enroll students")
	}
	return helper.JsonCreated(c, "Students enrolled successfully.", rows)
}

// GET /api/courses/enrollments?course_id=
func (h *CourseRelationController) ListEnrollments(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("course_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id parameter is required")
	}
	courseID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
	}

	var rows []courseModel.CourseEnrollmentModel
	if err := h.DB.Where("course_enrollment_course_id = ?", courseID).
		Order("course_enrollment_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch enrollments")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/courses/enrollments?course_id=&student_id=
func (h *CourseRelationController) DeleteEnrollment(c *fiber.Ctx) error {
	rawCourse := strings.TrimSpace(c.Query("course_id"))
	studentID := strings.TrimSpace(c.Query("student_id"))
	if rawCourse == "" || studentID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id and student_id parameters are required")
	}
	courseID, err := strconv.ParseUint(rawCourse, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
	}

	res := h.DB.Where("course_enrollment_course_id = ? AND course_enrollment_student_id = ?", courseID, studentID).
		Delete(&courseModel.CourseEnrollmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove enrollment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
	}
	return helper.JsonDeleted(c, "Enrollment removed successfully.", fiber.Map{
		"course_id":  courseID,
		"student_id": studentID,
	})
}

// ===================== COURSE CLASSES =====================

// POST /api/courses/classes
func (h *CourseRelationController) CreateCourseClass(c *fiber.Ctx) error {
	var req courseDTO.AddCourseClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateCourse.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var courseCount int64
	if err := h.DB.Table("course").Where("course_id = ?", req.CourseID).Count(&courseCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate course")
	}
	if courseCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Course not found")
	}
	var classCount int64
	if err := h.DB.Table("classes").Where("class_id = ?", req.ClassID).Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate class")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class not found")
	}

	m := &courseModel.CourseClassModel{
		CourseClassCourseID: req.CourseID,
		CourseClassClassID:  req.ClassID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Class is already linked to this course")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link class to course")
	}
	return helper.JsonCreated(c, "Class linked to course successfully.", m)
}

// GET /api/courses/classes?course_id=
func (h *CourseRelationController) ListCourseClasses(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("course_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id parameter is required")
	}
	courseID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
	}

	var rows []courseModel.CourseClassModel
	if err := h.DB.Where("course_class_course_id = ?", courseID).
		Order("course_class_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course classes")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/courses/classes?course_id=&class_id=
func (h *CourseRelationController) DeleteCourseClass(c *fiber.Ctx) error {
	rawCourse := strings.TrimSpace(c.Query("course_id"))
	rawClass := strings.TrimSpace(c.Query("class_id"))
	if rawCourse == "" || rawClass == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id and class_id parameters are required")
	}
	courseID, err := strconv.ParseUint(rawCourse, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
	}
	classID, err := strconv.ParseUint(rawClass, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}

	res := h.DB.Where("course_class_course_id = ? AND course_class_class_id = ?", courseID, classID).
		Delete(&courseModel.CourseClassModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unlink class")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course class link not found")
	}
	return helper.JsonDeleted(c, "Class unlinked from course successfully.", fiber.Map{
		"course_id": courseID,
		"class_id":  classID,
	})
}
