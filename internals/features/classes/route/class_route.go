package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	classController "labadmin_backend/internals/features/classes/controller"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// ClassRoutes mounts /classes under an authenticated group.
func ClassRoutes(r fiber.Router, db *gorm.DB) {
	classCtl := classController.NewClassController(db)
	relationCtl := classController.NewClassRelationController(db)
	commentCtl := classController.NewClassCommentController(db)

	classes := r.Group("/classes")

	// reads: any authenticated role
	classes.Get("/", classCtl.List)
	classes.Get("/locations", relationCtl.ListLocations)
	classes.Get("/teachers", relationCtl.ListAssignments)
	classes.Get("/comments", commentCtl.List)

	teacherOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("classes"),
		constants.RoleTeacher,
	)
	assignmentRoles := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("teaching assignments"),
		constants.RoleTeacher, constants.RoleTeachingAffairs,
	)

	classes.Post("/", teacherOnly, classCtl.Create)
	classes.Post("/locations", teacherOnly, relationCtl.CreateLocation)
	classes.Post("/teachers", assignmentRoles, relationCtl.CreateAssignment)
	// comments are open to every authenticated role; the delete rule is
	// enforced inside the controller (sender or staff)
	classes.Post("/comments", commentCtl.Create)

	// literal paths must be registered before the :id wildcards
	classes.Delete("/locations", teacherOnly, relationCtl.DeleteLocation)
	classes.Delete("/teachers", assignmentRoles, relationCtl.DeleteAssignment)
	classes.Delete("/comments/:id", commentCtl.Delete)
	classes.Patch("/:id", teacherOnly, classCtl.Update)
	classes.Delete("/:id", teacherOnly, classCtl.Delete)
}
