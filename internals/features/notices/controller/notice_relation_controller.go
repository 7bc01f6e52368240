package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
	helper "labadmin_backend/internals/helpers"
)

// NoticeRelationController manages tags, content-tag links and the ordered
// rows that place contents inside a notice.
type NoticeRelationController struct{ DB *gorm.DB }

func NewNoticeRelationController(db *gorm.DB) *NoticeRelationController {
	return &NoticeRelationController{DB: db}
}

// ===================== TAGS =====================

// POST /api/notices/tags
func (h *NoticeRelationController) CreateTag(c *fiber.Ctx) error {
	var req noticeDTO.CreateNoticeTagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := &noticeModel.NoticeTagModel{NoticeTagName: strings.TrimSpace(req.NoticeTagName)}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Tag name already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tag")
	}
	return helper.JsonCreated(c, "Tag created successfully.", m)
}

// GET /api/notices/tags
func (h *NoticeRelationController) ListTags(c *fiber.Ctx) error {
	var tags []noticeModel.NoticeTagModel
	if err := h.DB.Order("notice_tag_name ASC").Find(&tags).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tags")
	}
	return helper.JsonList(c, tags)
}

// DELETE /api/notices/tags/:id
// Content links referencing the tag cascade.
func (h *NoticeRelationController) DeleteTag(c *fiber.Ctx) error {
	tagID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid tag id")
	}

	var existing noticeModel.NoticeTagModel
	if err := h.DB.Where("notice_tag_id = ?", tagID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tag not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch tag")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_content_tag_tag_id = ?", existing.NoticeTagID).
			Delete(&noticeModel.NoticeContentTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("notice_tag_id = ?", existing.NoticeTagID).
			Delete(&noticeModel.NoticeTagModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete tag")
	}
	return helper.JsonDeleted(c, "Tag deleted successfully.", fiber.Map{"notice_tag_id": existing.NoticeTagID})
}

// ===================== CONTENT TAGS =====================

// POST /api/notices/content-tags
func (h *NoticeRelationController) CreateContentTag(c *fiber.Ctx) error {
	var req noticeDTO.AddContentTagRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateNotice.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var contentCount int64
	if err := h.DB.Table("notice_content").Where("notice_content_id = ?", req.ContentID).
		Count(&contentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate content")
	}
	if contentCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Notice content not found")
	}
	var tagCount int64
	if err := h.DB.Table("notice_tag").Where("notice_tag_id = ?", req.TagID).
		Count(&tagCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate tag")
	}
	if tagCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tag not found")
	}

	m := &noticeModel.NoticeContentTagModel{
		NoticeContentTagContentID: req.ContentID,
		NoticeContentTagTagID:     req.TagID,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Content already carries this tag")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to tag content")
	}
	return helper.JsonCreated(c, "Content tagged successfully.", m)
}

// GET /api/notices/content-tags?content_id=
func (h *NoticeRelationController) ListContentTags(c *fiber.Ctx) error {
	tx := h.DB.Model(&noticeModel.NoticeContentTagModel{})
	if raw := strings.TrimSpace(c.Query("content_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "content_id must be an integer")
		}
		tx = tx.Where("notice_content_tag_content_id = ?", id)
	}

	var rows []noticeModel.NoticeContentTagModel
	if err := tx.Order("notice_content_tag_id ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch content tags")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/notices/content-tags?content_id=&tag_id=
func (h *NoticeRelationController) DeleteContentTag(c *fiber.Ctx) error {
	rawContent := strings.TrimSpace(c.Query("content_id"))
	rawTag := strings.TrimSpace(c.Query("tag_id"))
	if rawContent == "" || rawTag == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "content_id and tag_id parameters are required")
	}
	contentID, err := strconv.ParseUint(rawContent, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "content_id must be an integer")
	}
	tagID, err := strconv.ParseUint(rawTag, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "tag_id must be an integer")
	}

	res := h.DB.Where("notice_content_tag_content_id = ? AND notice_content_tag_tag_id = ?", contentID, tagID).
		Delete(&noticeModel.NoticeContentTagModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to remove content tag")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Content tag not found")
	}
	return helper.JsonDeleted(c, "Content tag removed successfully.", fiber.Map{
		"content_id": contentID,
		"tag_id":     tagID,
	})
}

// ===================== ROWS =====================

// POST /api/notices/rows
// Referencing a missing notice or content is a reference error (400), a
// duplicate (notice, content) pair is a conflict (409).
func (h *NoticeRelationController) CreateRow(c *fiber.Ctx) error {
	var req noticeDTO.AddNoticeRowRequest
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
	var contentCount int64
	if err := h.DB.Table("notice_content").Where("notice_content_id = ?", req.ContentID).
		Count(&contentCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to validate content")
	}
	if contentCount == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Notice content not found")
	}

	m := &noticeModel.NoticeRowModel{
		NoticeRowNoticeID:  req.NoticeID,
		NoticeRowContentID: req.ContentID,
		NoticeRowOrderNum:  req.OrderNum,
	}
	if err := h.DB.Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Content is already placed in this notice")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to add notice row")
	}
	return helper.JsonCreated(c, "Notice row added successfully.", m)
}

// GET /api/notices/rows?notice_id=
// Rows come back in display order.
func (h *NoticeRelationController) ListRows(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("notice_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_id parameter is required")
	}
	noticeID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_id must be an integer")
	}

	var rows []noticeModel.NoticeRowModel
	if err := h.DB.Where("notice_row_notice_id = ?", noticeID).
		Order("notice_row_order_num ASC, notice_row_id ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice rows")
	}
	return helper.JsonList(c, rows)
}

// DELETE /api/notices/rows/:id
func (h *NoticeRelationController) DeleteRow(c *fiber.Ctx) error {
	rowID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid row id")
	}

	res := h.DB.Where("notice_row_id = ?", rowID).Delete(&noticeModel.NoticeRowModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notice row")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notice row not found")
	}
	return helper.JsonDeleted(c, "Notice row deleted successfully.", fiber.Map{"notice_row_id": rowID})
}
