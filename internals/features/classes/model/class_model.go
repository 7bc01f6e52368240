package model

import (
	"time"
)

// ClassModel is a schedulable session. It exists independently of any course;
// the course link lives in course_class.
type ClassModel struct {
	ClassID        uint      `gorm:"column:class_id;primaryKey;autoIncrement" json:"class_id"`
	ClassName      string    `gorm:"column:class_name;type:varchar(100);not null" json:"class_name"`
	ClassStartTime time.Time `gorm:"column:class_start_time;not null" json:"class_start_time"`
	ClassCreatedAt time.Time `gorm:"column:class_created_at;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"column:class_updated_at;not null;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string { return "classes" }
