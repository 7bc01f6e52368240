package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	labController "labadmin_backend/internals/features/labs/controller"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// LabRoutes mounts /labs under an authenticated group.
func LabRoutes(r fiber.Router, db *gorm.DB) {
	labCtl := labController.NewLabController(db)
	managerCtl := labController.NewLabManagerController(db)

	labs := r.Group("/labs")

	// reads: any authenticated role
	labs.Get("/", labCtl.List)
	labs.Get("/managers", managerCtl.List)

	// mutations: manager only
	managerOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorManager("labs"),
		constants.RoleManager,
	)
	labs.Post("/", managerOnly, labCtl.Create)
	labs.Post("/managers", managerOnly, managerCtl.Create)
	// literal /managers must be registered before the :id wildcards
	labs.Delete("/managers", managerOnly, managerCtl.Delete)
	labs.Patch("/:id", managerOnly, labCtl.Update)
	labs.Delete("/:id", managerOnly, labCtl.Delete)
}
