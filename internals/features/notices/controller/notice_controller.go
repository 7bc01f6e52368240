// internals/features/notices/controller/notice_controller.go
package controller

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
	helper "labadmin_backend/internals/helpers"
	helperAuth "labadmin_backend/internals/helpers/auth"
	"labadmin_backend/internals/scope"
)

type NoticeController struct{ DB *gorm.DB }

func NewNoticeController(db *gorm.DB) *NoticeController { return &NoticeController{DB: db} }

var validateNotice = validator.New()

// ===================== CREATE =====================
// POST /api/notices
func (h *NoticeController) Create(c *fiber.Ctx) error {
	senderID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req noticeDTO.CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	targetTable := "classes"
	targetColumn := "class_id"
	if req.NoticeType == noticeModel.NoticeTypeLab {
		targetTable = "labs"
		targetColumn = "lab_id"
	}
	var targetCount int64
	if err := h.DB.Table(targetTable).Where(targetColumn+" = ?", req.NoticeClassOrLabID).
		Count(&targetCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate notice target")
	}
	if targetCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Notice target not found")
	}

	m := &noticeModel.NoticeModel{
		NoticeType:         req.NoticeType,
		NoticeClassOrLabID: req.NoticeClassOrLabID,
		NoticeSenderID:     senderID,
		NoticePostTime:     req.NoticePostTime,
		NoticeEndTime:      req.NoticeEndTime,
	}
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notice")
	}
	return helper.JsonCreated(c, "Notice created successfully.", m)
}

// ===================== LIST =====================
// GET /api/notices?notice_id=&notice_type=&class_or_lab_id=&active=&personal=
// Returns composed notices: rows in display order with resolved content and
// tags, plus the completion count. Filters compose by intersection; the
// active window is opt-in, historical notices are returned otherwise.
func (h *NoticeController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&noticeModel.NoticeModel{})

	if raw := strings.TrimSpace(c.Query("notice_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "notice_id must be an integer")
		}
		tx = tx.Where("notice_id = ?", id)
	}
	noticeType := strings.TrimSpace(c.Query("notice_type"))
	if noticeType != "" {
		if noticeType != noticeModel.NoticeTypeClass && noticeType != noticeModel.NoticeTypeLab {
			return helper.JsonError(c, fiber.StatusBadRequest, "notice_type must be class or lab")
		}
		tx = tx.Where("notice_type = ?", noticeType)
	}
	if raw := strings.TrimSpace(c.Query("class_or_lab_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "class_or_lab_id must be an integer")
		}
		tx = tx.Where("notice_class_or_lab_id = ?", id)
	}
	if strings.EqualFold(c.Query("active"), "true") {
		now := time.Now()
		tx = tx.Where("notice_post_time <= ? AND notice_end_time >= ?", now, now)
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
		classIDs, err := scope.Resolve(h.DB, role, userID, scope.KindClass)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve personal scope")
		}
		labIDs, err := scope.Resolve(h.DB, role, userID, scope.KindLab)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve personal scope")
		}
		// a notice is visible when its target class or lab is in scope
		if len(classIDs) == 0 && len(labIDs) == 0 {
			return helper.JsonList(c, []noticeDTO.NoticeDetail{})
		}
		switch {
		case len(labIDs) == 0:
			tx = tx.Where("notice_type = ? AND notice_class_or_lab_id IN ?",
				noticeModel.NoticeTypeClass, classIDs)
		case len(classIDs) == 0:
			tx = tx.Where("notice_type = ? AND notice_class_or_lab_id IN ?",
				noticeModel.NoticeTypeLab, labIDs)
		default:
			tx = tx.Where(
				"(notice_type = ? AND notice_class_or_lab_id IN ?) OR (notice_type = ? AND notice_class_or_lab_id IN ?)",
				noticeModel.NoticeTypeClass, classIDs,
				noticeModel.NoticeTypeLab, labIDs,
			)
		}
	}

	var notices []noticeModel.NoticeModel
	if err := tx.Order("notice_id ASC").Find(&notices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notices")
	}

	details, err := composeNotices(h.DB, notices)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compose notices")
	}
	return helper.JsonList(c, details)
}

// ===================== UPDATE =====================
// PATCH /api/notices/:id
func (h *NoticeController) Update(c *fiber.Ctx) error {
	noticeID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notice id")
	}

	var existing noticeModel.NoticeModel
	if err := h.DB.Where("notice_id = ?", noticeID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice")
	}

	var req noticeDTO.UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	postTime := existing.NoticePostTime
	endTime := existing.NoticeEndTime
	if req.NoticePostTime != nil {
		postTime = *req.NoticePostTime
	}
	if req.NoticeEndTime != nil {
		endTime = *req.NoticeEndTime
	}
	if endTime.Before(postTime) {
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_end_time must not precede notice_post_time")
	}

	updates := map[string]interface{}{}
	if req.NoticePostTime != nil {
		updates["notice_post_time"] = postTime
	}
	if req.NoticeEndTime != nil {
		updates["notice_end_time"] = endTime
	}
	if len(updates) == 0 {
		return helper.JsonUpdated(c, "No changes", existing)
	}

	if err := h.DB.Model(&noticeModel.NoticeModel{}).
		Where("notice_id = ?", existing.NoticeID).
		Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice")
	}

	var after noticeModel.NoticeModel
	if err := h.DB.Where("notice_id = ?", existing.NoticeID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Notice updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Notice updated successfully.", after)
}

// ===================== DELETE =====================
// DELETE /api/notices/:id
// Cascades rows and completions. Contents and tags are shared across
// notices and survive.
func (h *NoticeController) Delete(c *fiber.Ctx) error {
	noticeID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notice id")
	}

	var existing noticeModel.NoticeModel
	if err := h.DB.Where("notice_id = ?", noticeID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_row_notice_id = ?", existing.NoticeID).
			Delete(&noticeModel.NoticeRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notice_completion_notice_id = ?", existing.NoticeID).
			Delete(&noticeModel.NoticeCompletionModel{}).Error; err != nil {
			return err
		}
		return tx.Where("notice_id = ?", existing.NoticeID).Delete(&noticeModel.NoticeModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notice")
	}

	return helper.JsonDeleted(c, "Notice deleted successfully.", fiber.Map{"notice_id": existing.NoticeID})
}
