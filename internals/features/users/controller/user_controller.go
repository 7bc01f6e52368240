// internals/features/users/controller/user_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userDTO "labadmin_backend/internals/features/users/dto"
	userModel "labadmin_backend/internals/features/users/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
	"labadmin_backend/internals/helpers/blob"
)

// UserController serves the caller's own profile plus the teachingAffairs
// directory view.
type UserController struct {
	DB    *gorm.DB
	Blobs blob.Service
}

func NewUserController(db *gorm.DB, blobs blob.Service) *UserController {
	return &UserController{DB: db, Blobs: blobs}
}

var validateUser = validator.New()

const profilePictureDir = "users/profile"

// ===================== ME =====================

// GET /api/users/me
func (h *UserController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var user userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return helper.JsonOK(c, "Profile fetched successfully.", user)
}

// PATCH /api/users/me (multipart or JSON)
// Profile fields update in place; an optional "profile_picture" upload
// replaces the stored picture.
func (h *UserController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var existing userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	var req userDTO.UpdateMeRequest
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value["user_real_name"]; ok && len(vals) > 0 {
			v := strings.TrimSpace(vals[0])
			req.UserRealName = &v
		}
		if vals, ok := form.Value["user_department"]; ok && len(vals) > 0 {
			v := strings.TrimSpace(vals[0])
			req.UserDepartment = &v
		}
		if vals, ok := form.Value["user_phone_number"]; ok && len(vals) > 0 {
			v := strings.TrimSpace(vals[0])
			req.UserPhoneNumber = &v
		}
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateUser.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.UserRealName != nil {
		updates["user_real_name"] = *req.UserRealName
	}
	if req.UserDepartment != nil {
		updates["user_department"] = *req.UserDepartment
	}
	if req.UserPhoneNumber != nil {
		updates["user_phone_number"] = *req.UserPhoneNumber
	}

	if fh, err := c.FormFile("profile_picture"); err == nil && fh != nil {
		ref, err := h.Blobs.UploadImage(c.Context(), profilePictureDir, fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store profile picture")
		}
		if existing.UserProfilePicture != nil {
			if err := h.Blobs.Delete(c.Context(), *existing.UserProfilePicture); err != nil {
				log.Printf("⚠️ old profile picture cleanup failed for %s: %v", userID, err)
			}
		}
		updates["user_profile_picture"] = ref
	}

	if len(updates) == 0 {
		return helper.JsonUpdated(c, "No changes", existing)
	}

	if err := h.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}

	var after userModel.UserModel
	if err := h.DB.Where("user_id = ?", userID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Profile updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Profile updated successfully.", after)
}

// ===================== DIRECTORY =====================

// GET /api/users?user_id=&real_name=
// teachingAffairs only, gated at the route.
func (h *UserController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&userModel.UserModel{})

	if userID := strings.TrimSpace(c.Query("user_id")); userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if name := strings.TrimSpace(c.Query("real_name")); name != "" {
		tx = tx.Where("LOWER(user_real_name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	var users []userModel.UserModel
	if err := tx.Order("user_id ASC").Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return helper.JsonList(c, users)
}
