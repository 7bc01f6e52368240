package model

import (
	"time"

	"github.com/lib/pq"
)

type LabModel struct {
	LabID          uint           `gorm:"column:lab_id;primaryKey;autoIncrement" json:"lab_id"`
	LabName        string         `gorm:"column:lab_name;type:varchar(100);not null;uniqueIndex:uq_lab_name" json:"lab_name"`
	LabLocation    string         `gorm:"column:lab_location;type:varchar(255);not null" json:"lab_location"`
	LabSafetyNotes pq.StringArray `gorm:"column:lab_safety_notes;type:text[]" json:"lab_safety_notes"`
	LabEquipment   pq.StringArray `gorm:"column:lab_equipment;type:text[]" json:"lab_equipment"`
	LabImage       *string        `gorm:"column:lab_image;type:text" json:"lab_image,omitempty"`
	LabCreatedAt   time.Time      `gorm:"column:lab_created_at;not null;autoCreateTime" json:"lab_created_at"`
	LabUpdatedAt   time.Time      `gorm:"column:lab_updated_at;not null;autoUpdateTime" json:"lab_updated_at"`
}

func (LabModel) TableName() string { return "labs" }
