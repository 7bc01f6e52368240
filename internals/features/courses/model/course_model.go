package model

import (
	"time"
)

// CourseModel carries both a surrogate id and the business natural key
// (course_code, course_sequence). Patch and delete are addressed by the
// natural key, reads may use either.
type CourseModel struct {
	CourseID         uint      `gorm:"column:course_id;primaryKey;autoIncrement" json:"course_id"`
	CourseCode       string    `gorm:"column:course_code;type:varchar(8);not null;uniqueIndex:uq_course_code_sequence" json:"course_code"`
	CourseSequence   string    `gorm:"column:course_sequence;type:varchar(5);not null;uniqueIndex:uq_course_code_sequence" json:"course_sequence"`
	CourseDepartment string    `gorm:"column:course_department;type:varchar(50);not null" json:"course_department"`
	CourseName       string    `gorm:"column:course_name;type:varchar(100);not null" json:"course_name"`
	CourseCreatedAt  time.Time `gorm:"column:course_created_at;not null;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt  time.Time `gorm:"column:course_updated_at;not null;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string { return "course" }

// CourseKey is the natural key value type used for patch/delete addressing.
type CourseKey struct {
	Code     string
	Sequence string
}
