// internals/features/classes/controller/class_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classDTO "labadmin_backend/internals/features/classes/dto"
	classModel "labadmin_backend/internals/features/classes/model"
	expModel "labadmin_backend/internals/features/experiments/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
	"labadmin_backend/internals/scope"
)

type ClassController struct{ DB *gorm.DB }

func NewClassController(db *gorm.DB) *ClassController { return &ClassController{DB: db} }

var validateClass = validator.New()

// ===================== CREATE =====================
// POST /api/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	var req classDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.JsonCreated(c, "Class created successfully.", m)
}

// ===================== LIST =====================
// GET /api/classes?class_id=&class_name=&course_id=&personal=
// All filters compose by intersection.
func (h *ClassController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&classModel.ClassModel{})

	if raw := strings.TrimSpace(c.Query("class_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
		}
		tx = tx.Where("class_id = ?", id)
	}
	if name := strings.TrimSpace(c.Query("class_name")); name != "" {
		tx = tx.Where("LOWER(class_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if raw := strings.TrimSpace(c.Query("course_id")); raw != "" {
		courseID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id must be an integer")
		}
		courseClasses := h.DB.Table("course_class").
			Select("course_class_class_id").
			Where("course_class_course_id = ?", courseID)
		tx = tx.Where("class_id IN (?)", courseClasses)
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
		ids, err := scope.Resolve(h.DB, role, userID, scope.KindClass)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve personal scope")
		}
		// an empty relationship chain filters everything out
		if len(ids) == 0 {
			return helper.JsonList(c, []classModel.ClassModel{})
		}
		tx = tx.Where("class_id IN ?", ids)
	}

	var classes []classModel.ClassModel
	if err := tx.Order("class_id ASC").Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}
	return helper.JsonList(c, classes)
}

// ===================== UPDATE =====================
// PATCH /api/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	classID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var existing classModel.ClassModel
	if err := h.DB.Where("class_id = ?", classID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var req classDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.ClassName != nil {
		updates["class_name"] = strings.TrimSpace(*req.ClassName)
	}
	if req.ClassStartTime != nil {
		updates["class_start_time"] = *req.ClassStartTime
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "No changes", existing)
	}

	if err := h.DB.Model(&classModel.ClassModel{}).
		Where("class_id = ?", existing.ClassID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}

	var after classModel.ClassModel
	if err := h.DB.Where("class_id = ?", existing.ClassID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Class updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Class updated successfully.", after)
}

// ===================== DELETE =====================
// DELETE /api/classes/:id
// Cascades locations, assignments, course links, comments, experiments
// (with attachments) and class notices (with rows/completions).
func (h *ClassController) Delete(c *fiber.Ctx) error {
	classID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var existing classModel.ClassModel
	if err := h.DB.Where("class_id = ?", classID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_location_class_id = ?", existing.ClassID).
			Delete(&classModel.ClassLocationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("teaching_assignment_class_id = ?", existing.ClassID).
			Delete(&classModel.TeachingAssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM course_class WHERE course_class_class_id = ?", existing.ClassID).Error; err != nil {
			return err
		}
		if err := tx.Where("class_comment_class_id = ?", existing.ClassID).
			Delete(&classModel.ClassCommentModel{}).Error; err != nil {
			return err
		}

		classExperiments := tx.Table("experiments").
			Select("experiment_id").
			Where("experiment_class_id = ?", existing.ClassID)
		if err := tx.Exec("DELETE FROM experiment_image WHERE experiment_image_experiment_id IN (?)", classExperiments).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM experiment_file WHERE experiment_file_experiment_id IN (?)", classExperiments).Error; err != nil {
			return err
		}
		if err := tx.Where("experiment_class_id = ?", existing.ClassID).
			Delete(&expModel.ExperimentModel{}).Error; err != nil {
			return err
		}

		classNotices := tx.Table("notice").
			Select("notice_id").
			Where("notice_type = ? AND notice_class_or_lab_id = ?", "class", existing.ClassID)
		if err := tx.Exec("DELETE FROM notice_row WHERE notice_row_notice_id IN (?)", classNotices).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notice_completion WHERE notice_completion_notice_id IN (?)", classNotices).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notice WHERE notice_type = ? AND notice_class_or_lab_id = ?", "class", existing.ClassID).Error; err != nil {
			return err
		}

		return tx.Where("class_id = ?", existing.ClassID).Delete(&classModel.ClassModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}

	return helper.JsonDeleted(c, "Class deleted successfully.", fiber.Map{"class_id": existing.ClassID})
}
