package model

import (
	"time"
)

// Attachments are accumulate-only: patch may add rows, never remove them.

type ExperimentImageModel struct {
	ExperimentImageID           uint      `gorm:"column:experiment_image_id;primaryKey;autoIncrement" json:"experiment_image_id"`
	ExperimentImageExperimentID uint      `gorm:"column:experiment_image_experiment_id;not null;index" json:"experiment_image_experiment_id"`
	ExperimentImageRef          string    `gorm:"column:experiment_image_ref;type:text;not null" json:"experiment_image_ref"`
	ExperimentImageOriginalName string    `gorm:"column:experiment_image_original_name;type:varchar(255)" json:"experiment_image_original_name"`
	ExperimentImageCreatedAt    time.Time `gorm:"column:experiment_image_created_at;not null;autoCreateTime" json:"experiment_image_created_at"`
}

func (ExperimentImageModel) TableName() string { return "experiment_image" }

type ExperimentFileModel struct {
	ExperimentFileID           uint      `gorm:"column:experiment_file_id;primaryKey;autoIncrement" json:"experiment_file_id"`
	ExperimentFileExperimentID uint      `gorm:"column:experiment_file_experiment_id;not null;index" json:"experiment_file_experiment_id"`
	ExperimentFileRef          string    `gorm:"column:experiment_file_ref;type:text;not null" json:"experiment_file_ref"`
	ExperimentFileOriginalName string    `gorm:"column:experiment_file_original_name;type:varchar(255)" json:"experiment_file_original_name"`
	ExperimentFileCreatedAt    time.Time `gorm:"column:experiment_file_created_at;not null;autoCreateTime" json:"experiment_file_created_at"`
}

func (ExperimentFileModel) TableName() string { return "experiment_file" }
