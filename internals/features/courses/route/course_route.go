package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	courseController "labadmin_backend/internals/features/courses/controller"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// CourseRoutes mounts /courses under an authenticated group.
func CourseRoutes(r fiber.Router, db *gorm.DB) {
	courseCtl := courseController.NewCourseController(db)
	relationCtl := courseController.NewCourseRelationController(db)

	courses := r.Group("/courses")

	// reads: any authenticated role
	courses.Get("/", courseCtl.List)
	courses.Get("/enrollments", relationCtl.ListEnrollments)
	courses.Get("/classes", relationCtl.ListCourseClasses)

	teacherOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("courses"),
		constants.RoleTeacher,
	)

	courses.Post("/", teacherOnly, courseCtl.Create)
	courses.Post("/enrollments", teacherOnly, relationCtl.Enroll)
	courses.Post("/classes", teacherOnly, relationCtl.CreateCourseClass)
	// the course itself is addressed by its natural key, not a path id
	courses.Patch("/", teacherOnly, courseCtl.Update)
	courses.Delete("/enrollments", teacherOnly, relationCtl.DeleteEnrollment)
	courses.Delete("/classes", teacherOnly, relationCtl.DeleteCourseClass)
	courses.Delete("/", teacherOnly, courseCtl.Delete)
}
