package dto

import (
	courseModel "labadmin_backend/internals/features/courses/model"
)

// ===================== COURSE =====================

type CreateCourseRequest struct {
	CourseCode       string `json:"course_code" validate:"required,max=8"`
	CourseSequence   string `json:"course_sequence" validate:"required,max=5"`
	CourseDepartment string `json:"course_department" validate:"required,max=50"`
	CourseName       string `json:"course_name" validate:"required,max=100"`
}

func (r CreateCourseRequest) ToModel() *courseModel.CourseModel {
	return &courseModel.CourseModel{
		CourseCode:       r.CourseCode,
		CourseSequence:   r.CourseSequence,
		CourseDepartment: r.CourseDepartment,
		CourseName:       r.CourseName,
	}
}

// UpdateCourseRequest addresses the row by its natural key; both key fields
// are mandatory and only the non-key fields may change.
type UpdateCourseRequest struct {
	CourseCode       string  `json:"course_code" validate:"required,max=8"`
	CourseSequence   string  `json:"course_sequence" validate:"required,max=5"`
	CourseDepartment *string `json:"course_department" validate:"omitempty,max=50"`
	CourseName       *string `json:"course_name" validate:"omitempty,max=100"`
}

func (r UpdateCourseRequest) Key() courseModel.CourseKey {
	return courseModel.CourseKey{Code: r.CourseCode, Sequence: r.CourseSequence}
}

// ===================== ENROLLMENTS =====================

type EnrollStudentsRequest struct {
	CourseID   uint     `json:"course_id" validate:"required"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1,dive,len=10,numeric"`
}

// ===================== COURSE CLASSES =====================

type AddCourseClassRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
	ClassID  uint `json:"class_id" validate:"required"`
}
