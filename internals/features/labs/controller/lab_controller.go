// internals/features/labs/controller/lab_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	labDTO "labadmin_backend/internals/features/labs/dto"
	labModel "labadmin_backend/internals/features/labs/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
	"labadmin_backend/internals/scope"
)

type LabController struct{ DB *gorm.DB }

func NewLabController(db *gorm.DB) *LabController { return &LabController{DB: db} }

var validateLab = validator.New()

// ===================== CREATE =====================
// POST /api/labs
func (h *LabController) Create(c *fiber.Ctx) error {
	var req labDTO.CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLab.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "A lab with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create lab")
	}
	return helper.JsonCreated(c, "Lab created successfully.", m)
}

// ===================== LIST =====================
// GET /api/labs?lab_id=&lab_name=&personal=
func (h *LabController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&labModel.LabModel{})

	if raw := strings.TrimSpace(c.Query("lab_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "lab_id must be an integer")
		}
		tx = tx.Where("lab_id = ?", id)
	}
	if name := strings.TrimSpace(c.Query("lab_name")); name != "" {
		tx = tx.Where("LOWER(lab_name) LIKE ?", "%"+strings.ToLower(name)+"%")
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
		ids, err := scope.Resolve(h.DB, role, userID, scope.KindLab)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve personal scope")
		}
		// empty scope means zero rows, never the full table
		if len(ids) == 0 {
			return helper.JsonList(c, []labModel.LabModel{})
		}
		tx = tx.Where("lab_id IN ?", ids)
	}

	var labs []labModel.LabModel
	if err := tx.Order("lab_id ASC").Find(&labs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch labs")
	}
	return helper.JsonList(c, labs)
}

// ===================== UPDATE =====================
// PATCH /api/labs/:id
func (h *LabController) Update(c *fiber.Ctx) error {
	labID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}

	var existing labModel.LabModel
	if err := h.DB.Where("lab_id = ?", labID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch lab")
	}

	var req labDTO.UpdateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLab.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.LabName != nil {
		updates["lab_name"] = strings.TrimSpace(*req.LabName)
	}
	if req.LabLocation != nil {
		updates["lab_location"] = strings.TrimSpace(*req.LabLocation)
	}
	if req.LabSafetyNotes != nil {
		updates["lab_safety_notes"] = pqArray(*req.LabSafetyNotes)
	}
	if req.LabEquipment != nil {
		updates["lab_equipment"] = pqArray(*req.LabEquipment)
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "No changes", existing)
	}

	if err := h.DB.Model(&labModel.LabModel{}).
		Where("lab_id = ?", existing.LabID).
		Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "A lab with this name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lab")
	}

	var after labModel.LabModel
	if err := h.DB.Where("lab_id = ?", existing.LabID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Lab updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Lab updated successfully.", after)
}

// ===================== DELETE =====================
// DELETE /api/labs/:id
// Cascades manage_lab, class_location and lab notices
func (h *LabController) Delete(c *fiber.Ctx) error {
	labID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lab id")
	}

	var existing labModel.LabModel
	if err := h.DB.Where("lab_id = ?", labID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch lab")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("manage_lab_lab_id = ?", existing.LabID).
			Delete(&labModel.ManageLabModel{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM class_location WHERE class_location_lab_id = ?", existing.LabID).Error; err != nil {
			return err
		}
		labNotices := tx.Table("notice").
			Select("notice_id").
			Where("notice_type = ? AND notice_class_or_lab_id = ?", "lab", existing.LabID)
		if err := tx.Exec("DELETE FROM notice_row WHERE notice_row_notice_id IN (?)", labNotices).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notice_completion WHERE notice_completion_notice_id IN (?)", labNotices).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM notice WHERE notice_type = ? AND notice_class_or_lab_id = ?", "lab", existing.LabID).Error; err != nil {
			return err
		}
		return tx.Where("lab_id = ?", existing.LabID).Delete(&labModel.LabModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete lab")
	}

	return helper.JsonDeleted(c, "Lab deleted successfully.", fiber.Map{"lab_id": existing.LabID})
}

func pqArray(a []string) pq.StringArray {
	if a == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(a)
}
