package model

import (
	"time"
)

type CourseEnrollmentModel struct {
	CourseEnrollmentID        uint      `gorm:"column:course_enrollment_id;primaryKey;autoIncrement" json:"course_enrollment_id"`
	CourseEnrollmentStudentID string    `gorm:"column:course_enrollment_student_id;type:varchar(10);not null;uniqueIndex:uq_course_enrollment_pair" json:"course_enrollment_student_id"`
	CourseEnrollmentCourseID  uint      `gorm:"column:course_enrollment_course_id;not null;uniqueIndex:uq_course_enrollment_pair" json:"course_enrollment_course_id"`
	CourseEnrollmentCreatedAt time.Time `gorm:"column:course_enrollment_created_at;not null;autoCreateTime" json:"course_enrollment_created_at"`
}

func (CourseEnrollmentModel) TableName() string { return "course_enrollment" }
