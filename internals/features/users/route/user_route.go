package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	userController "labadmin_backend/internals/features/users/controller"
	"labadmin_backend/internals/helpers/blob"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// UserRoutes mounts /users under an authenticated group.
func UserRoutes(r fiber.Router, db *gorm.DB, blobs blob.Service) {
	userCtl := userController.NewUserController(db, blobs)

	users := r.Group("/users")

	users.Get("/me", userCtl.Me)
	users.Patch("/me", userCtl.UpdateMe)

	affairsOnly := authMiddleware.OnlyRoles(
		"❌ Only teaching affairs may access the user directory.",
		constants.RoleTeachingAffairs,
	)
	users.Get("/", affairsOnly, userCtl.List)
}
