package model

import (
	"time"
)

type ClassCommentModel struct {
	ClassCommentID       uint      `gorm:"column:class_comment_id;primaryKey;autoIncrement" json:"class_comment_id"`
	ClassCommentClassID  uint      `gorm:"column:class_comment_class_id;not null;index" json:"class_comment_class_id"`
	ClassCommentSenderID string    `gorm:"column:class_comment_sender_id;type:varchar(10);not null" json:"class_comment_sender_id"`
	ClassCommentContent  string    `gorm:"column:class_comment_content;type:text;not null" json:"class_comment_content"`
	ClassCommentSentTime time.Time `gorm:"column:class_comment_sent_time;not null;autoCreateTime" json:"class_comment_sent_time"`
}

func (ClassCommentModel) TableName() string { return "class_comment" }
