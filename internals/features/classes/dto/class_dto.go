package dto

import (
	"time"

	classModel "labadmin_backend/internals/features/classes/model"
)

// ===================== Requests =====================

type CreateClassRequest struct {
	ClassName      string    `json:"class_name" validate:"required,max=100"`
	ClassStartTime time.Time `json:"class_start_time" validate:"required"`
}

func (r *CreateClassRequest) ToModel() *classModel.ClassModel {
	return &classModel.ClassModel{
		ClassName:      r.ClassName,
		ClassStartTime: r.ClassStartTime,
	}
}

type UpdateClassRequest struct {
	ClassName      *string    `json:"class_name" validate:"omitempty,max=100"`
	ClassStartTime *time.Time `json:"class_start_time"`
}

type AddClassLocationRequest struct {
	ClassID uint `json:"class_id" validate:"required"`
	LabID   uint `json:"lab_id" validate:"required"`
}

type AddTeachingAssignmentRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,len=10,numeric"`
	ClassID   uint   `json:"class_id" validate:"required"`
}

type CreateClassCommentRequest struct {
	ClassID uint   `json:"class_id" validate:"required"`
	Content string `json:"content" validate:"required"`
}
