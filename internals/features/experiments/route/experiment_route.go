package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	expController "labadmin_backend/internals/features/experiments/controller"
	"labadmin_backend/internals/helpers/blob"
	"labadmin_backend/internals/middlewares"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// ExperimentRoutes mounts /experiments under an authenticated group.
func ExperimentRoutes(r fiber.Router, db *gorm.DB, blobs blob.Service) {
	expCtl := expController.NewExperimentController(db, blobs)

	experiments := r.Group("/experiments")

	// reads: any authenticated role
	experiments.Get("/", expCtl.List)

	teacherOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorTeacher("experiments"),
		constants.RoleTeacher,
	)
	uploadLimiter := middlewares.UploadRateLimiter()

	experiments.Post("/", teacherOnly, uploadLimiter, expCtl.Create)
	experiments.Patch("/:id", teacherOnly, uploadLimiter, expCtl.Update)
	experiments.Delete("/:id", teacherOnly, expCtl.Delete)
}
