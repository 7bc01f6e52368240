package model

import (
	"time"
)

// CourseClassModel links a course to a class. Callers must not create
// duplicate pairs; the unique index backs that up.
type CourseClassModel struct {
	CourseClassID        uint      `gorm:"column:course_class_id;primaryKey;autoIncrement" json:"course_class_id"`
	CourseClassCourseID  uint      `gorm:"column:course_class_course_id;not null;uniqueIndex:uq_course_class_pair" json:"course_class_course_id"`
	CourseClassClassID   uint      `gorm:"column:course_class_class_id;not null;uniqueIndex:uq_course_class_pair" json:"course_class_class_id"`
	CourseClassCreatedAt time.Time `gorm:"column:course_class_created_at;not null;autoCreateTime" json:"course_class_created_at"`
}

func (CourseClassModel) TableName() string { return "course_class" }
