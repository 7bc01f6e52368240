package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
)

// NoticeCompletionController tracks per-user read receipts.
type NoticeCompletionController struct{ DB *gorm.DB }

func NewNoticeCompletionController(db *gorm.DB) *NoticeCompletionController {
	return &NoticeCompletionController{DB: db}
}

// ===================== CREATE =====================
// POST /api/notices/completions
// Marks the caller's completion. Marking twice is idempotent: the existing
// record comes back with 200 instead of a conflict.
func (h *NoticeCompletionController) Create(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req noticeDTO.MarkCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var noticeCount int64
	if err := h.DB.Table("notice").Where("notice_id = ?", req.NoticeID).
		Count(&noticeCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate notice")
	}
	if noticeCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Notice not found")
	}

	m := &noticeModel.NoticeCompletionModel{
		NoticeCompletionNoticeID:       req.NoticeID,
		NoticeCompletionUserID:         userID,
		NoticeCompletionCompletionTime: time.Now(),
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing noticeModel.NoticeCompletionModel
			if err := h.DB.Where("notice_completion_notice_id = ? AND notice_completion_user_id = ?",
				req.NoticeID, userID).First(&existing).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch completion")
			}
			return helper.JsonOK(c, "Notice already marked as completed.", existing)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark completion")
	}
	return helper.JsonCreated(c, "Notice marked as completed.", m)
}

// ===================== LIST =====================
// GET /api/notices/completions?notice_id= | ?mine=true
func (h *NoticeCompletionController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&noticeModel.NoticeCompletionModel{})

	raw := strings.TrimSpace(c.Query("notice_id"))
	mine := strings.EqualFold(c.Query("mine"), "true")
	if raw == "" && !mine {
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_id or mine=true is required")
	}
	if raw != "" {
		noticeID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "notice_id must be an integer")
		}
		tx = tx.Where("notice_completion_notice_id = ?", noticeID)
	}
	if mine {
		userID, err := helperAuth.GetUserIDFromLocals(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		tx = tx.Where("notice_completion_user_id = ?", userID)
	}

	var rows []noticeModel.NoticeCompletionModel
	if err := tx.Order("notice_completion_id ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch completions")
	}
	return helper.JsonList(c, rows)
}

// ===================== DELETE =====================
// DELETE /api/notices/completions/:id
func (h *NoticeCompletionController) Delete(c *fiber.Ctx) error {
	completionID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid completion id")
	}

	res := h.DB.Where("notice_completion_id = ?", completionID).
		Delete(&noticeModel.NoticeCompletionModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete completion")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Completion not found")
	}
	return helper.JsonDeleted(c, "Completion deleted successfully.", fiber.Map{
		"notice_completion_id": completionID,
	})
}
