package model

import (
	"time"
)

const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
	ContentTypeFile  = "file"
)

// NoticeContentModel is reusable: the same content may appear in several
// notices through notice_row, so its lifecycle is independent of any one
// notice. Text lives in notice_content_text; image/file carry a blob ref.
type NoticeContentModel struct {
	NoticeContentID        uint      `gorm:"column:notice_content_id;primaryKey;autoIncrement" json:"notice_content_id"`
	NoticeContentType      string    `gorm:"column:notice_content_type;type:varchar(10);not null" json:"notice_content_type"`
	NoticeContentText      string    `gorm:"column:notice_content_text;type:text" json:"notice_content_text"`
	NoticeContentBlobRef   *string   `gorm:"column:notice_content_blob_ref;type:text" json:"notice_content_blob_ref,omitempty"`
	NoticeContentCreatedAt time.Time `gorm:"column:notice_content_created_at;not null;autoCreateTime" json:"notice_content_created_at"`
	NoticeContentUpdatedAt time.Time `gorm:"column:notice_content_updated_at;not null;autoUpdateTime" json:"notice_content_updated_at"`
}

func (NoticeContentModel) TableName() string { return "notice_content" }
