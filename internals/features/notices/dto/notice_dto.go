package dto

import (
	"time"

	noticeModel "labadmin_backend/internals/features/notices/model"
)

// ===================== NOTICE =====================

type CreateNoticeRequest struct {
	NoticeType         string    `json:"notice_type" validate:"required,oneof=class lab"`
	NoticeClassOrLabID uint      `json:"notice_class_or_lab_id" validate:"required"`
	NoticePostTime     time.Time `json:"notice_post_time" validate:"required"`
	NoticeEndTime      time.Time `json:"notice_end_time" validate:"required,gtefield=NoticePostTime"`
}

type UpdateNoticeRequest struct {
	NoticePostTime *time.Time `json:"notice_post_time"`
	NoticeEndTime  *time.Time `json:"notice_end_time"`
}

// ===================== CONTENT =====================

type UpdateNoticeContentRequest struct {
	NoticeContentText *string `json:"notice_content_text"`
}

// ===================== TAGS / ROWS / COMPLETIONS =====================

type CreateNoticeTagRequest struct {
	NoticeTagName string `json:"notice_tag_name" validate:"required,max=50"`
}

type AddContentTagRequest struct {
	ContentID uint `json:"content_id" validate:"required"`
	TagID     uint `json:"tag_id" validate:"required"`
}

type AddNoticeRowRequest struct {
	NoticeID  uint `json:"notice_id" validate:"required"`
	ContentID uint `json:"content_id" validate:"required"`
	OrderNum  int  `json:"order_num" validate:"gte=0"`
}

type MarkCompletionRequest struct {
	NoticeID uint `json:"notice_id" validate:"required"`
}

// ===================== READ SHAPES =====================

// NoticeRowDetail is one composed row: the placement plus the content it
// resolves to and that content's tags.
type NoticeRowDetail struct {
	NoticeRowID       uint                           `json:"notice_row_id"`
	NoticeRowOrderNum int                            `json:"notice_row_order_num"`
	Content           noticeModel.NoticeContentModel `json:"content"`
	Tags              []noticeModel.NoticeTagModel   `json:"tags"`
}

// NoticeDetail is the full read representation of one notice: rows in display
// order with resolved content, and the completion count.
type NoticeDetail struct {
	Notice          noticeModel.NoticeModel `json:"notice"`
	Rows            []NoticeRowDetail       `json:"rows"`
	CompletionCount int64                   `json:"completion_count"`
}
