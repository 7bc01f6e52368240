// Package scope computes personal-mode visibility: which class, course, and
// lab ids a user may see, derived from the relationship chains
// enrollment → course → class → lab → manager.
package scope

import (
	"fmt"

	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
)

type TargetKind string

const (
	KindClass  TargetKind = "class"
	KindCourse TargetKind = "course"
	KindLab    TargetKind = "lab"
)

// Strategy resolves the reachable id set for one role. The result is always
// an explicit inclusion filter: an empty slice means the caller must return
// zero rows, never "no restriction".
type Strategy interface {
	ResolveIDs(db *gorm.DB, userID string, kind TargetKind) ([]uint, error)
}

var strategies = map[string]Strategy{
	constants.RoleStudent:         studentStrategy{},
	constants.RoleTeacher:         teacherStrategy{},
	constants.RoleManager:         managerStrategy{},
	constants.RoleTeachingAffairs: teachingAffairsStrategy{},
}

// Resolve picks the strategy for role and resolves the id set. Unknown roles
// resolve to the empty set.
func Resolve(db *gorm.DB, role, userID string, kind TargetKind) ([]uint, error) {
	s, ok := strategies[role]
	if !ok {
		return []uint{}, nil
	}
	ids, err := s.ResolveIDs(db, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("scope resolve (%s/%s): %w", role, kind, err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

// ===================== STUDENT =====================
// Reaches everything through course enrollment.

type studentStrategy struct{}

func (studentStrategy) ResolveIDs(db *gorm.DB, userID string, kind TargetKind) ([]uint, error) {
	enrolledCourses := db.Table("course_enrollment").
		Select("course_enrollment_course_id").
		Where("course_enrollment_student_id = ?", userID)

	switch kind {
	case KindCourse:
		return pluck(db.Table("course_enrollment").
			Distinct("course_enrollment_course_id").
			Where("course_enrollment_student_id = ?", userID))
	case KindClass:
		return pluck(db.Table("course_class").
			Distinct("course_class_class_id").
			Where("course_class_course_id IN (?)", enrolledCourses))
	case KindLab:
		classes := db.Table("course_class").
			Select("course_class_class_id").
			Where("course_class_course_id IN (?)", enrolledCourses)
		return pluck(db.Table("class_location").
			Distinct("class_location_lab_id").
			Where("class_location_class_id IN (?)", classes))
	}
	return nil, fmt.Errorf("unknown target kind %q", kind)
}

// ===================== TEACHER =====================
// Reaches everything through teaching assignments.

type teacherStrategy struct{}

func (teacherStrategy) ResolveIDs(db *gorm.DB, userID string, kind TargetKind) ([]uint, error) {
	taughtClasses := db.Table("teaching_assignment").
		Select("teaching_assignment_class_id").
		Where("teaching_assignment_teacher_id = ?", userID)

	switch kind {
	case KindClass:
		return pluck(db.Table("teaching_assignment").
			Distinct("teaching_assignment_class_id").
			Where("teaching_assignment_teacher_id = ?", userID))
	case KindCourse:
		return pluck(db.Table("course_class").
			Distinct("course_class_course_id").
			Where("course_class_class_id IN (?)", taughtClasses))
	case KindLab:
		return pluck(db.Table("class_location").
			Distinct("class_location_lab_id").
			Where("class_location_class_id IN (?)", taughtClasses))
	}
	return nil, fmt.Errorf("unknown target kind %q", kind)
}

// ===================== MANAGER =====================
// Reaches everything through managed labs.

type managerStrategy struct{}

func (managerStrategy) ResolveIDs(db *gorm.DB, userID string, kind TargetKind) ([]uint, error) {
	managedLabs := db.Table("manage_lab").
		Select("manage_lab_lab_id").
		Where("manage_lab_manager_id = ?", userID)

	switch kind {
	case KindLab:
		return pluck(db.Table("manage_lab").
			Distinct("manage_lab_lab_id").
			Where("manage_lab_manager_id = ?", userID))
	case KindClass:
		return pluck(db.Table("class_location").
			Distinct("class_location_class_id").
			Where("class_location_lab_id IN (?)", managedLabs))
	case KindCourse:
		locatedClasses := db.Table("class_location").
			Select("class_location_class_id").
			Where("class_location_lab_id IN (?)", managedLabs)
		return pluck(db.Table("course_class").
			Distinct("course_class_course_id").
			Where("course_class_class_id IN (?)", locatedClasses))
	}
	return nil, fmt.Errorf("unknown target kind %q", kind)
}

// ===================== TEACHING AFFAIRS =====================
// Personal mode is unrestricted for this role. The strategy still returns an
// explicit id set (every id of the target kind) so callers keep one uniform
// inclusion-filter contract.

type teachingAffairsStrategy struct{}

func (teachingAffairsStrategy) ResolveIDs(db *gorm.DB, userID string, kind TargetKind) ([]uint, error) {
	switch kind {
	case KindClass:
		return pluck(db.Table("classes").Select("class_id"))
	case KindCourse:
		return pluck(db.Table("course").Select("course_id"))
	case KindLab:
		return pluck(db.Table("labs").Select("lab_id"))
	}
	return nil, fmt.Errorf("unknown target kind %q", kind)
}

func pluck(q *gorm.DB) ([]uint, error) {
	ids := []uint{}
	if err := q.Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Intersect combines two id sets; used when the personal scope must be ANDed
// with another relational filter that also yields an id set.
func Intersect(a, b []uint) []uint {
	seen := make(map[uint]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	out := []uint{}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
