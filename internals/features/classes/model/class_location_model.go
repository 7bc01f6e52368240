package model

import (
	"time"
)

// ClassLocationModel links a class to the lab hosting it. A class may meet in
// zero or more labs.
type ClassLocationModel struct {
	ClassLocationID        uint      `gorm:"column:class_location_id;primaryKey;autoIncrement" json:"class_location_id"`
	ClassLocationClassID   uint      `gorm:"column:class_location_class_id;not null;uniqueIndex:uq_class_location_pair" json:"class_location_class_id"`
	ClassLocationLabID     uint      `gorm:"column:class_location_lab_id;not null;uniqueIndex:uq_class_location_pair" json:"class_location_lab_id"`
	ClassLocationCreatedAt time.Time `gorm:"column:class_location_created_at;not null;autoCreateTime" json:"class_location_created_at"`
}

func (ClassLocationModel) TableName() string { return "class_location" }
