package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "labadmin_backend/internals/features/classes/route"
	courseRoute "labadmin_backend/internals/features/courses/route"
	expRoute "labadmin_backend/internals/features/experiments/route"
	labRoute "labadmin_backend/internals/features/labs/route"
	noticeRoute "labadmin_backend/internals/features/notices/route"
	userRoute "labadmin_backend/internals/features/users/route"
	"labadmin_backend/internals/helpers/blob"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// SetupRoutes mounts the public health probe and the authenticated /api tree.
func SetupRoutes(app *fiber.App, db *gorm.DB, blobs blob.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.Ping() != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", authMiddleware.AuthMiddleware())

	labRoute.LabRoutes(api, db)
	classRoute.ClassRoutes(api, db)
	courseRoute.CourseRoutes(api, db)
	expRoute.ExperimentRoutes(api, db, blobs)
	noticeRoute.NoticeRoutes(api, db, blobs)
	userRoute.UserRoutes(api, db, blobs)

	log.Println("✅ Routes registered")
}
