package model

import (
	"time"
)

const (
	NoticeTypeClass = "class"
	NoticeTypeLab   = "lab"
)

// NoticeModel targets either a class or a lab, discriminated by notice_type.
// [post_time, end_time] is the visibility window; reads only apply it when
// asked, management views query historical notices too.
type NoticeModel struct {
	NoticeID           uint      `gorm:"column:notice_id;primaryKey;autoIncrement" json:"notice_id"`
	NoticeClassOrLabID uint      `gorm:"column:notice_class_or_lab_id;not null;index" json:"notice_class_or_lab_id"`
	NoticeType         string    `gorm:"column:notice_type;type:varchar(10);not null" json:"notice_type"`
	NoticeSenderID     string    `gorm:"column:notice_sender_id;type:varchar(10);not null" json:"notice_sender_id"`
	NoticePostTime     time.Time `gorm:"column:notice_post_time;not null" json:"notice_post_time"`
	NoticeEndTime      time.Time `gorm:"column:notice_end_time;not null" json:"notice_end_time"`
	NoticeCreatedAt    time.Time `gorm:"column:notice_created_at;not null;autoCreateTime" json:"notice_created_at"`
	NoticeUpdatedAt    time.Time `gorm:"column:notice_updated_at;not null;autoUpdateTime" json:"notice_updated_at"`
}

func (NoticeModel) TableName() string { return "notice" }
