package scope_test

import (
	"testing"

	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	classModel "labadmin_backend/internals/features/classes/model"
	courseModel "labadmin_backend/internals/features/courses/model"
	labModel "labadmin_backend/internals/features/labs/model"
	"labadmin_backend/internals/scope"
	"labadmin_backend/internals/testutil"
)

// fixture: two independent worlds so narrowing is observable.
//
//	course 1 ─ class (A) ─ lab (X)
//	course 2 ─ class (B) ─ lab (Y)
//
// student 1000000001 enrolled in course 1 only
// teacher 2000000001 assigned to class A only
// manager 3000000001 manages lab X only
type world struct {
	courseA, courseB uint
	classA, classB   uint
	labX, labY       uint
}

const (
	studentID = "1000000001"
	teacherID = "2000000001"
	managerID = "3000000001"
	affairsID = "4000000001"
)

func buildWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()

	testutil.SeedUser(t, db, studentID, constants.RoleStudent)
	testutil.SeedUser(t, db, teacherID, constants.RoleTeacher)
	testutil.SeedUser(t, db, managerID, constants.RoleManager)
	testutil.SeedUser(t, db, affairsID, constants.RoleTeachingAffairs)

	labX := labModel.LabModel{LabName: "Chemistry Lab", LabLocation: "Building 1"}
	labY := labModel.LabModel{LabName: "Physics Lab", LabLocation: "Building 2"}
	mustCreate(t, db, &labX)
	mustCreate(t, db, &labY)

	classA := classModel.ClassModel{ClassName: "Organic Chemistry 01"}
	classB := classModel.ClassModel{ClassName: "Mechanics 01"}
	mustCreate(t, db, &classA)
	mustCreate(t, db, &classB)

	courseA := courseModel.CourseModel{CourseCode: "CHEM101", CourseSequence: "01", CourseDepartment: "Chemistry", CourseName: "Organic Chemistry"}
	courseB := courseModel.CourseModel{CourseCode: "PHYS101", CourseSequence: "01", CourseDepartment: "Physics", CourseName: "Mechanics"}
	mustCreate(t, db, &courseA)
	mustCreate(t, db, &courseB)

	mustCreate(t, db, &courseModel.CourseClassModel{CourseClassCourseID: courseA.CourseID, CourseClassClassID: classA.ClassID})
	mustCreate(t, db, &courseModel.CourseClassModel{CourseClassCourseID: courseB.CourseID, CourseClassClassID: classB.ClassID})

	mustCreate(t, db, &classModel.ClassLocationModel{ClassLocationClassID: classA.ClassID, ClassLocationLabID: labX.LabID})
	mustCreate(t, db, &classModel.ClassLocationModel{ClassLocationClassID: classB.ClassID, ClassLocationLabID: labY.LabID})

	mustCreate(t, db, &courseModel.CourseEnrollmentModel{CourseEnrollmentStudentID: studentID, CourseEnrollmentCourseID: courseA.CourseID})
	mustCreate(t, db, &classModel.TeachingAssignmentModel{TeachingAssignmentTeacherID: teacherID, TeachingAssignmentClassID: classA.ClassID})
	mustCreate(t, db, &labModel.ManageLabModel{ManageLabManagerID: managerID, ManageLabLabID: labX.LabID})

	return world{
		courseA: courseA.CourseID, courseB: courseB.CourseID,
		classA: classA.ClassID, classB: classB.ClassID,
		labX: labX.LabID, labY: labY.LabID,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func resolve(t *testing.T, db *gorm.DB, role, userID string, kind scope.TargetKind) []uint {
	t.Helper()
	ids, err := scope.Resolve(db, role, userID, kind)
	if err != nil {
		t.Fatalf("resolve %s/%s: %v", role, kind, err)
	}
	return ids
}

func assertIDs(t *testing.T, got []uint, want ...uint) {
	t.Helper()
	gotSet := map[uint]bool{}
	for _, id := range got {
		gotSet[id] = true
	}
	if len(gotSet) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for _, id := range want {
		if !gotSet[id] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// Each role only reaches its own half of the world.
func TestResolveNarrowsPerRole(t *testing.T) {
	db := testutil.OpenTestDB(t)
	w := buildWorld(t, db)

	assertIDs(t, resolve(t, db, constants.RoleStudent, studentID, scope.KindCourse), w.courseA)
	assertIDs(t, resolve(t, db, constants.RoleStudent, studentID, scope.KindClass), w.classA)
	assertIDs(t, resolve(t, db, constants.RoleStudent, studentID, scope.KindLab), w.labX)

	assertIDs(t, resolve(t, db, constants.RoleTeacher, teacherID, scope.KindClass), w.classA)
	assertIDs(t, resolve(t, db, constants.RoleTeacher, teacherID, scope.KindCourse), w.courseA)
	assertIDs(t, resolve(t, db, constants.RoleTeacher, teacherID, scope.KindLab), w.labX)

	assertIDs(t, resolve(t, db, constants.RoleManager, managerID, scope.KindLab), w.labX)
	assertIDs(t, resolve(t, db, constants.RoleManager, managerID, scope.KindClass), w.classA)
	assertIDs(t, resolve(t, db, constants.RoleManager, managerID, scope.KindCourse), w.courseA)
}

// A user with no relationship rows resolves to the explicit empty set for
// every kind, never nil and never "unrestricted".
func TestResolveEmptyChain(t *testing.T) {
	db := testutil.OpenTestDB(t)
	buildWorld(t, db)

	const lonely = "1999999999"
	testutil.SeedUser(t, db, lonely, constants.RoleStudent)

	for _, kind := range []scope.TargetKind{scope.KindClass, scope.KindCourse, scope.KindLab} {
		ids := resolve(t, db, constants.RoleStudent, lonely, kind)
		if ids == nil {
			t.Fatalf("kind %s: got nil, want empty slice", kind)
		}
		if len(ids) != 0 {
			t.Fatalf("kind %s: got %v, want empty", kind, ids)
		}
	}
}

func TestResolveUnknownRole(t *testing.T) {
	db := testutil.OpenTestDB(t)

	ids := resolve(t, db, "auditor", "5000000001", scope.KindClass)
	if len(ids) != 0 {
		t.Fatalf("unknown role resolved to %v, want empty", ids)
	}
}

// Three different roles converge on the same class through three different
// relationship chains.
func TestResolveCrossRoleConvergence(t *testing.T) {
	db := testutil.OpenTestDB(t)
	w := buildWorld(t, db)

	assertIDs(t, resolve(t, db, constants.RoleStudent, studentID, scope.KindClass), w.classA)
	assertIDs(t, resolve(t, db, constants.RoleTeacher, teacherID, scope.KindClass), w.classA)
	assertIDs(t, resolve(t, db, constants.RoleManager, managerID, scope.KindClass), w.classA)
}

// teachingAffairs sees every id of every kind, still as an explicit set.
func TestResolveTeachingAffairsUnrestricted(t *testing.T) {
	db := testutil.OpenTestDB(t)
	w := buildWorld(t, db)

	assertIDs(t, resolve(t, db, constants.RoleTeachingAffairs, affairsID, scope.KindClass), w.classA, w.classB)
	assertIDs(t, resolve(t, db, constants.RoleTeachingAffairs, affairsID, scope.KindCourse), w.courseA, w.courseB)
	assertIDs(t, resolve(t, db, constants.RoleTeachingAffairs, affairsID, scope.KindLab), w.labX, w.labY)
}

func TestIntersect(t *testing.T) {
	got := scope.Intersect([]uint{1, 2, 3}, []uint{2, 3, 4})
	assertIDs(t, got, 2, 3)

	if out := scope.Intersect([]uint{}, []uint{1}); len(out) != 0 {
		t.Fatalf("intersect with empty set got %v", out)
	}
}
