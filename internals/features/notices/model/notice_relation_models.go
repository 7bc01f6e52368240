package model

import (
	"time"
)

// NoticeRowModel places a content item inside a notice at order_num. The
// (notice, content) pair is unique; adding the same content twice to one
// notice is a conflict, not a silent dedup.
type NoticeRowModel struct {
	NoticeRowID        uint      `gorm:"column:notice_row_id;primaryKey;autoIncrement" json:"notice_row_id"`
	NoticeRowNoticeID  uint      `gorm:"column:notice_row_notice_id;not null;uniqueIndex:uq_notice_row_pair" json:"notice_row_notice_id"`
	NoticeRowContentID uint      `gorm:"column:notice_row_content_id;not null;uniqueIndex:uq_notice_row_pair" json:"notice_row_content_id"`
	NoticeRowOrderNum  int       `gorm:"column:notice_row_order_num;not null" json:"notice_row_order_num"`
	NoticeRowCreatedAt time.Time `gorm:"column:notice_row_created_at;not null;autoCreateTime" json:"notice_row_created_at"`
}

func (NoticeRowModel) TableName() string { return "notice_row" }

type NoticeTagModel struct {
	NoticeTagID        uint      `gorm:"column:notice_tag_id;primaryKey;autoIncrement" json:"notice_tag_id"`
	NoticeTagName      string    `gorm:"column:notice_tag_name;type:varchar(50);not null;uniqueIndex:uq_notice_tag_name" json:"notice_tag_name"`
	NoticeTagCreatedAt time.Time `gorm:"column:notice_tag_created_at;not null;autoCreateTime" json:"notice_tag_created_at"`
}

func (NoticeTagModel) TableName() string { return "notice_tag" }

type NoticeContentTagModel struct {
	NoticeContentTagID        uint      `gorm:"column:notice_content_tag_id;primaryKey;autoIncrement" json:"notice_content_tag_id"`
	NoticeContentTagContentID uint      `gorm:"column:notice_content_tag_content_id;not null;uniqueIndex:uq_notice_content_tag_pair" json:"notice_content_tag_content_id"`
	NoticeContentTagTagID     uint      `gorm:"column:notice_content_tag_tag_id;not null;uniqueIndex:uq_notice_content_tag_pair" json:"notice_content_tag_tag_id"`
	NoticeContentTagCreatedAt time.Time `gorm:"column:notice_content_tag_created_at;not null;autoCreateTime" json:"notice_content_tag_created_at"`
}

func (NoticeContentTagModel) TableName() string { return "notice_content_tag" }

// NoticeCompletionModel is the per-user read receipt. Marking twice for the
// same (user, notice) pair is idempotent, backed by the unique index.
type NoticeCompletionModel struct {
	NoticeCompletionID             uint      `gorm:"column:notice_completion_id;primaryKey;autoIncrement" json:"notice_completion_id"`
	NoticeCompletionNoticeID       uint      `gorm:"column:notice_completion_notice_id;not null;uniqueIndex:uq_notice_completion_pair" json:"notice_completion_notice_id"`
	NoticeCompletionUserID         string    `gorm:"column:notice_completion_user_id;type:varchar(10);not null;uniqueIndex:uq_notice_completion_pair" json:"notice_completion_user_id"`
	NoticeCompletionCompletionTime time.Time `gorm:"column:notice_completion_completion_time;not null" json:"notice_completion_completion_time"`
}

func (NoticeCompletionModel) TableName() string { return "notice_completion" }
