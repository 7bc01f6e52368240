package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExperimentModel belongs to exactly one class. Tag lists are free-form and
// default to empty arrays, never null.
type ExperimentModel struct {
	ExperimentID             uint                         `gorm:"column:experiment_id;primaryKey;autoIncrement" json:"experiment_id"`
	ExperimentClassID        uint                         `gorm:"column:experiment_class_id;not null;index" json:"experiment_class_id"`
	ExperimentTitle          string                       `gorm:"column:experiment_title;type:varchar(200);not null" json:"experiment_title"`
	ExperimentDescription    string                       `gorm:"column:experiment_description;type:text" json:"experiment_description"`
	ExperimentEstimatedTime  int                          `gorm:"column:experiment_estimated_time;not null;default:0" json:"experiment_estimated_time"`
	ExperimentSafetyTags     datatypes.JSONSlice[string]  `gorm:"column:experiment_safety_tags" json:"experiment_safety_tags"`
	ExperimentMethodTags     datatypes.JSONSlice[string]  `gorm:"column:experiment_method_tags" json:"experiment_method_tags"`
	ExperimentSubmissionTags datatypes.JSONSlice[string]  `gorm:"column:experiment_submission_tags" json:"experiment_submission_tags"`
	ExperimentOtherTags      datatypes.JSONSlice[string]  `gorm:"column:experiment_other_tags" json:"experiment_other_tags"`
	ExperimentCreatedAt      time.Time                    `gorm:"column:experiment_created_at;not null;autoCreateTime" json:"experiment_created_at"`
	ExperimentUpdatedAt      time.Time                    `gorm:"column:experiment_updated_at;not null;autoUpdateTime" json:"experiment_updated_at"`
}

func (ExperimentModel) TableName() string { return "experiments" }
