package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	noticeDTO "labadmin_backend/internals/features/notices/dto"
	noticeModel "labadmin_backend/internals/features/notices/model"
	helper "labadmin_backend/internals/helpers"
	"labadmin_backend/internals/helpers/blob"
)

// NoticeContentController manages the shared content pool notices draw from.
type NoticeContentController struct {
	DB    *gorm.DB
	Blobs blob.Service
}

func NewNoticeContentController(db *gorm.DB, blobs blob.Service) *NoticeContentController {
	return &NoticeContentController{DB: db, Blobs: blobs}
}

const (
	noticeImageDir = "notices/images"
	noticeFileDir  = "notices/files"
)

// ===================== CREATE =====================
// POST /api/notices/contents (multipart)
// notice_content_type selects the shape: text requires notice_content_text,
// image/file require an upload under "attachment".
func (h *NoticeContentController) Create(c *fiber.Ctx) error {
	contentType := strings.TrimSpace(c.FormValue("notice_content_type"))

	m := &noticeModel.NoticeContentModel{NoticeContentType: contentType}

	switch contentType {
	case noticeModel.ContentTypeText:
		text := c.FormValue("notice_content_text")
		if strings.TrimSpace(text) == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "notice_content_text is required for text content")
		}
		m.NoticeContentText = text

	case noticeModel.ContentTypeImage, noticeModel.ContentTypeFile:
		fh, err := c.FormFile("attachment")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "attachment upload is required for "+contentType+" content")
		}
		var ref string
		if contentType == noticeModel.ContentTypeImage {
			ref, err = h.Blobs.UploadImage(c.Context(), noticeImageDir, fh)
		} else {
			ref, err = h.Blobs.UploadFile(c.Context(), noticeFileDir, fh)
		}
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store attachment")
		}
		m.NoticeContentBlobRef = &ref
		m.NoticeContentText = fh.Filename

	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_content_type must be text, image or file")
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notice content")
	}
	return helper.JsonCreated(c, "Notice content created successfully.", m)
}

// ===================== LIST =====================
// GET /api/notices/contents?content_id=&tag_name=&text_content=
func (h *NoticeContentController) List(c *fiber.Ctx) error {
	tx := h.DB.Model(&noticeModel.NoticeContentModel{})

	if raw := strings.TrimSpace(c.Query("content_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "content_id must be an integer")
		}
		tx = tx.Where("notice_content_id = ?", id)
	}
	if tagName := strings.TrimSpace(c.Query("tag_name")); tagName != "" {
		taggedContents := h.DB.Table("notice_content_tag").
			Select("notice_content_tag_content_id").
			Joins("JOIN notice_tag ON notice_tag.notice_tag_id = notice_content_tag.notice_content_tag_tag_id").
			Where("notice_tag.notice_tag_name = ?", tagName)
		tx = tx.Where("notice_content_id IN (?)", taggedContents)
	}
	if text := strings.TrimSpace(c.Query("text_content")); text != "" {
		tx = tx.Where("LOWER(notice_content_text) LIKE ?", "%"+strings.ToLower(text)+"%")
	}

	var contents []noticeModel.NoticeContentModel
	if err := tx.Order("notice_content_id ASC").Find(&contents).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice contents")
	}
	return helper.JsonList(c, contents)
}

// ===================== UPDATE =====================
// PATCH /api/notices/contents/:id
// Only the text body may change; blob-backed content is immutable.
func (h *NoticeContentController) Update(c *fiber.Ctx) error {
	contentID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content id")
	}

	var existing noticeModel.NoticeContentModel
	if err := h.DB.Where("notice_content_id = ?", contentID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice content")
	}

	var req noticeDTO.UpdateNoticeContentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if req.NoticeContentText == nil {
		return helper.JsonUpdated(c, "No changes", existing)
	}
	if existing.NoticeContentType != noticeModel.ContentTypeText {
		return helper.JsonError(c, fiber.StatusBadRequest, "Only text content may be edited")
	}
	if strings.TrimSpace(*req.NoticeContentText) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "notice_content_text must not be empty")
	}

	if err := h.DB.Model(&noticeModel.NoticeContentModel{}).
		Where("notice_content_id = ?", existing.NoticeContentID).
		Update("notice_content_text", *req.NoticeContentText).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice content")
	}

	var after noticeModel.NoticeContentModel
	if err := h.DB.Where("notice_content_id = ?", existing.NoticeContentID).First(&after).Error; err != nil {
		return helper.JsonUpdated(c, "Notice content updated successfully.", existing)
	}
	return helper.JsonUpdated(c, "Notice content updated successfully.", after)
}

// ===================== DELETE =====================
// DELETE /api/notices/contents/:id
// Rows and content tags referencing it cascade; the blob (if any) is
// removed best-effort after the transaction commits.
func (h *NoticeContentController) Delete(c *fiber.Ctx) error {
	contentID, err := strconv.ParseUint(strings.TrimSpace(c.Params("id")), 10, 64)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid content id")
	}

	var existing noticeModel.NoticeContentModel
	if err := h.DB.Where("notice_content_id = ?", contentID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice content not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notice content")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("notice_row_content_id = ?", existing.NoticeContentID).
			Delete(&noticeModel.NoticeRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notice_content_tag_content_id = ?", existing.NoticeContentID).
			Delete(&noticeModel.NoticeContentTagModel{}).Error; err != nil {
			return err
		}
		return tx.Where("notice_content_id = ?", existing.NoticeContentID).
			Delete(&noticeModel.NoticeContentModel{}).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notice content")
	}

	if existing.NoticeContentBlobRef != nil {
		if err := h.Blobs.Delete(c.Context(), *existing.NoticeContentBlobRef); err != nil {
			log.Printf("⚠️ blob cleanup failed for content %d: %v", existing.NoticeContentID, err)
		}
	}

	return helper.JsonDeleted(c, "Notice content deleted successfully.", fiber.Map{
		"notice_content_id": existing.NoticeContentID,
	})
}
