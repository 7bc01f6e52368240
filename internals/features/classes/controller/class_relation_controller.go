package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	classDTO "labadmin_backend/internals/features/classes/dto"
	classModel "labadmin_backend/internals/features/classes/model"
	userModel "labadmin_backend/internals/features/users/model"
	helper "labadmin_backend/internals/helpers"
)

// ClassRelationController handles the class↔lab location links and the
// teacher↔class teaching assignments.
type ClassRelationController struct{ DB *gorm.DB }

func NewClassRelationController(db *gorm.DB) *ClassRelationController {
	return &ClassRelationController{DB: db}
}

// ===================== LOCATIONS =====================

// POST /api/classes/locations
func (h *ClassRelationController) CreateLocation(c *fiber.Ctx) error {
	var req classDTO.AddClassLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var classCount int64
	if err := h.DB.Table("classes").Where("class_id = ?", req.ClassID).Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate class")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class not found")
	}
	var labCount int64
	if err := h.DB.Table("labs").Where("lab_id = ?", req.LabID).Count(&labCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate lab")
	}
	if labCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Lab not found")
	}

	m := &classModel.ClassLocationModel{
		ClassLocationClassID: req.ClassID,
		ClassLocationLabID:   req.LabID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Class is already located in this lab")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add class location")
	}
	return helper.JsonCreated(c, "Class location added successfully.", m)
}

// GET /api/classes/locations?class_id=
func (h *ClassRelationController) ListLocations(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("class_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id parameter is required")
	}
	classID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}

	var rows []classModel.ClassLocationModel
	if err := h.DB.Where("class_location_class_id = ?", classID).
		Order("class_location_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class locations")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/classes/locations?class_id=&lab_id=
func (h *ClassRelationController) DeleteLocation(c *fiber.Ctx) error {
	rawClass := strings.TrimSpace(c.Query("class_id"))
	rawLab := strings.TrimSpace(c.Query("lab_id"))
	if rawClass == "" || rawLab == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id and lab_id parameters are required")
	}
	classID, err := strconv.ParseUint(rawClass, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}
	lab, err := strconv.ParseUint(rawLab, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lab_id must be an integer")
	}

	res := h.DB.Where("class_location_class_id = ? AND class_location_lab_id = ?", classID, lab).
		Delete(&classModel.ClassLocationModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove class location")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Class location not found")
	}
	return helper.JsonDeleted(c, "Class location removed successfully.", fiber.Map{
		"class_id": classID,
		"lab_id":   lab,
	})
}

// ===================== TEACHERS =====================

// POST /api/classes/teachers
func (h *ClassRelationController) CreateAssignment(c *fiber.Ctx) error {
	var req classDTO.AddTeachingAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", req.TeacherID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Teacher user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate teacher")
	}
	if user.UserRole != constants.RoleTeacher {
		return helper.JsonError(c, fiber.StatusBadRequest, "User is not a teacher")
	}
	var classCount int64
	if err := h.DB.Table("classes").Where("class_id = ?", req.ClassID).Count(&classCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate class")
	}
	if classCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Class not found")
	}

	m := &classModel.TeachingAssignmentModel{
		TeachingAssignmentTeacherID: req.TeacherID,
		TeachingAssignmentClassID:   req.ClassID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Teacher is already assigned to this class")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add teaching assignment")
	}
	return helper.JsonCreated(c, "Teacher assigned to class successfully.", m)
}

// GET /api/classes/teachers?class_id=
func (h *ClassRelationController) ListAssignments(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("class_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id parameter is required")
	}
	classID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}

	var rows []classModel.TeachingAssignmentModel
	if err := h.DB.Where("teaching_assignment_class_id = ?", classID).
		Order("teaching_assignment_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teaching assignments")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/classes/teachers?class_id=&teacher_id=
func (h *ClassRelationController) DeleteAssignment(c *fiber.Ctx) error {
	rawClass := strings.TrimSpace(c.Query("class_id"))
	teacherID := strings.TrimSpace(c.Query("teacher_id"))
	if rawClass == "" || teacherID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id and teacher_id parameters are required")
	}
	classID, err := strconv.ParseUint(rawClass, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}

	res := h.DB.Where("teaching_assignment_class_id = ? AND teaching_assignment_teacher_id = ?", classID, teacherID).
		Delete(&classModel.TeachingAssignmentModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove teaching assignment")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Teaching assignment not found")
	}
	return helper.JsonDeleted(c, "Teaching assignment removed successfully.", fiber.Map{
		"class_id":   classID,
		"teacher_id": teacherID,
	})
}
