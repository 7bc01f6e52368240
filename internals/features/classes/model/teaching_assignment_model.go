package model

import (
	"time"
)

type TeachingAssignmentModel struct {
	TeachingAssignmentID        uint      `gorm:"column:teaching_assignment_id;primaryKey;autoIncrement" json:"teaching_assignment_id"`
	TeachingAssignmentTeacherID string    `gorm:"column:teaching_assignment_teacher_id;type:varchar(10);not null;uniqueIndex:uq_teaching_assignment_pair" json:"teaching_assignment_teacher_id"`
	TeachingAssignmentClassID   uint      `gorm:"column:teaching_assignment_class_id;not null;uniqueIndex:uq_teaching_assignment_pair" json:"teaching_assignment_class_id"`
	TeachingAssignmentCreatedAt time.Time `gorm:"column:teaching_assignment_created_at;not null;autoCreateTime" json:"teaching_assignment_created_at"`
}

func (TeachingAssignmentModel) TableName() string { return "teaching_assignment" }
