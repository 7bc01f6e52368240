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
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
)

// ClassCommentController handles the per-class discussion thread.
type ClassCommentController struct{ DB *gorm.DB }

func NewClassCommentController(db *gorm.DB) *ClassCommentController {
	return &ClassCommentController{DB: db}
}

// ===================== CREATE =====================

// POST /api/classes/comments
// Any authenticated user may comment; the sender is always the caller.
func (h *ClassCommentController) Create(c *fiber.Ctx) error {
	senderID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req classDTO.CreateClassCommentRequest
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

	m := &classModel.ClassCommentModel{
		ClassCommentClassID:  req.ClassID,
		ClassCommentSenderID: senderID,
		ClassCommentContent:  req.Content,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to post comment")
	}
	return helper.JsonCreated(c, "Comment posted successfully.", m)
}

// ===================== LIST =====================

// GET /api/classes/comments?class_id=
// Returns the thread in send order.
func (h *ClassCommentController) List(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("class_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id parameter is required")
	}
	classID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id must be an integer")
	}

	var rows []classModel.ClassCommentModel
	if err := h.DB.Where("class_comment_class_id = ?", classID).
		Order("class_comment_sent_time ASC, class_comment_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch comments")
	}
	return helper.JsonList(c, rows)
}

// ===================== DELETE =====================

// DELETE /api/classes/comments/:id
// Allowed for the original sender, or any teacher/manager/teachingAffairs
// account. Anyone else gets 403, not 404.
func (h *ClassCommentController) Delete(c *fiber.Ctx) error {
	callerID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	callerRole, err := helperAuth.GetRoleFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid comment ID")
	}

	var comment classModel.ClassCommentModel
	if err := h.DB.First(&comment, "class_comment_id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Comment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch comment")
	}

	if comment.ClassCommentSenderID != callerID && !isCommentModerator(callerRole) {
		return helper.JsonError(c, fiber.StatusForbidden, "You may only delete your own comments")
	}

	if err := h.DB.Delete(&comment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete comment")
	}
	return helper.JsonDeleted(c, "Comment deleted successfully.", fiber.Map{
		"class_comment_id": comment.ClassCommentID,
	})
}

func isCommentModerator(role string) bool {
	for _, r := range constants.StaffRoles {
		if role == r {
			return true
		}
	}
	return false
}
