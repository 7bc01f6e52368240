package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	labDTO "labadmin_backend/internals/features/labs/dto"
	labModel "labadmin_backend/internals/features/labs/model"
	userModel "labadmin_backend/internals/features/users/model"
	helper "labadmin_backend/internals/helpers"
	"labadmin_backend/internals/constants"
)

type LabManagerController struct{ DB *gorm.DB }

func NewLabManagerController(db *gorm.DB) *LabManagerController {
	return &LabManagerController{DB: db}
}

// ===================== CREATE =====================
// POST /api/labs/managers
func (h *LabManagerController) Create(c *fiber.Ctx) error {
	var req labDTO.AddLabManagerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateLab.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// referenced user must exist and hold the manager role
	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", req.ManagerID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Manager user not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate manager")
	}
	if user.UserRole != constants.RoleManager {
		return helper.JsonError(c, fiber.StatusBadRequest, "User is not a manager")
	}

	var lab labModel.LabModel
	if err := h.DB.Where("lab_id = ?", req.LabID).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Lab not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate lab")
	}

	m := &labModel.ManageLabModel{
		ManageLabManagerID: req.ManagerID,
		ManageLabLabID:     req.LabID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "This user already manages the lab")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add manager")
	}

	return helper.JsonCreated(c, "Manager added to lab successfully.", fiber.Map{
		"manager_id": m.ManageLabManagerID,
		"lab_id":     m.ManageLabLabID,
	})
}

// ===================== LIST =====================
// GET /api/labs/managers?lab_id=
func (h *LabManagerController) List(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("lab_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "lab_id parameter is required")
	}
	labID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lab_id must be an integer")
	}

	var lab labModel.LabModel
	if err := h.DB.Where("lab_id = ?", labID).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Lab not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch lab")
	}

	var links []labModel.ManageLabModel
	if err := h.DB.Where("manage_lab_lab_id = ?", lab.LabID).
		Order("manage_lab_id ASC").
		Find(&links).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch managers")
	}

	// batch-load manager profiles
	managerIDs := make([]string, 0, len(links))
	for i := range links {
		managerIDs = append(managerIDs, links[i].ManageLabManagerID)
	}
	userMap := make(map[string]*userModel.UserModel, len(managerIDs))
	if len(managerIDs) > 0 {
		var users []userModel.UserModel
		if err := h.DB.Where("user_id IN ?", managerIDs).Find(&users).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load manager details")
		}
		for i := range users {
			u := users[i]
			userMap[u.UserID] = &u
		}
	}

	items := make([]labDTO.LabManagerDetail, 0, len(links))
	for i := range links {
		detail := labDTO.LabManagerDetail{
			ManageLabID: links[i].ManageLabID,
			ManagerID:   links[i].ManageLabManagerID,
			LabID:       links[i].ManageLabLabID,
		}
		if u := userMap[links[i].ManageLabManagerID]; u != nil {
			detail.RealName = u.UserRealName
			detail.Department = u.UserDepartment
		}
		items = append(items, detail)
	}
	return helper.JsonList(c, items)
}

// ===================== DELETE =====================
// DELETE /api/labs/managers?lab_id=&manager_id=
func (h *LabManagerController) Delete(c *fiber.Ctx) error {
	rawLab := strings.TrimSpace(c.Query("lab_id"))
	managerID := strings.TrimSpace(c.Query("manager_id"))
	if rawLab == "" || managerID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "lab_id and manager_id parameters are required")
	}
	labID, err := strconv.ParseUint(rawLab, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "lab_id must be an integer")
	}

	res := h.DB.Where("manage_lab_lab_id = ? AND manage_lab_manager_id = ?", labID, managerID).
		Delete(&labModel.ManageLabModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove manager")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Manager link not found")
	}
	return helper.JsonDeleted(c, "Manager removed from lab successfully.", fiber.Map{
		"lab_id":     labID,
		"manager_id": managerID,
	})
}
