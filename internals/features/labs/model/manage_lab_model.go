package model

import (
	"time"
)

// ManageLabModel links a manager user to a lab. A lab may have several
// managers; the pair itself is unique.
type ManageLabModel struct {
	ManageLabID        uint      `gorm:"column:manage_lab_id;primaryKey;autoIncrement" json:"manage_lab_id"`
	ManageLabManagerID string    `gorm:"column:manage_lab_manager_id;type:varchar(10);not null;uniqueIndex:uq_manage_lab_pair" json:"manage_lab_manager_id"`
	ManageLabLabID     uint      `gorm:"column:manage_lab_lab_id;not null;uniqueIndex:uq_manage_lab_pair" json:"manage_lab_lab_id"`
	ManageLabCreatedAt time.Time `gorm:"column:manage_lab_created_at;not null;autoCreateTime" json:"manage_lab_created_at"`
}

func (ManageLabModel) TableName() string { return "manage_lab" }
