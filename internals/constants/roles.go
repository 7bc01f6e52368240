package constants

import "fmt"

const (
	RoleStudent         = "student"
	RoleTeacher         = "teacher"
	RoleManager         = "manager"
	RoleTeachingAffairs = "teachingAffairs"
)

// Role error message templates
const (
	ErrOnlyTeachersCanAccess = "❌ Only teachers may access %s."
	ErrOnlyManagersCanAccess = "❌ Only lab managers may access %s."
	ErrOnlyStaffCanAccess    = "❌ Only teachers, managers, or teaching affairs may access %s."
)

func RoleErrorTeacher(feature string) string {
	return fmt.Sprintf(ErrOnlyTeachersCanAccess, feature)
}

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleTeacher,
		RoleManager,
		RoleTeachingAffairs,
	}

	TeacherOnly = []string{
		RoleTeacher,
	}

	ManagerOnly = []string{
		RoleManager,
	}

	NoticeSenders = []string{
		RoleTeacher,
		RoleManager,
	}

	StaffRoles = []string{
		RoleTeacher,
		RoleManager,
		RoleTeachingAffairs,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
