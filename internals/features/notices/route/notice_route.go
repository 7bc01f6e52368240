package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labadmin_backend/internals/constants"
	noticeController "labadmin_backend/internals/features/notices/controller"
	"labadmin_backend/internals/helpers/blob"
	"labadmin_backend/internals/middlewares"
	authMiddleware "labadmin_backend/internals/middlewares/auth"
)

// NoticeRoutes mounts /notices under an authenticated group.
func NoticeRoutes(r fiber.Router, db *gorm.DB, blobs blob.Service) {
	noticeCtl := noticeController.NewNoticeController(db)
	contentCtl := noticeController.NewNoticeContentController(db, blobs)
	relationCtl := noticeController.NewNoticeRelationController(db)
	completionCtl := noticeController.NewNoticeCompletionController(db)

	notices := r.Group("/notices")

	// reads: any authenticated role
	notices.Get("/", noticeCtl.List)
	notices.Get("/contents", contentCtl.List)
	notices.Get("/tags", relationCtl.ListTags)
	notices.Get("/content-tags", relationCtl.ListContentTags)
	notices.Get("/rows", relationCtl.ListRows)
	notices.Get("/completions", completionCtl.List)

	senderOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorStaff("notices"),
		constants.NoticeSenders...,
	)
	staffOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorStaff("notice tags"),
		constants.StaffRoles...,
	)
	uploadLimiter := middlewares.UploadRateLimiter()

	notices.Post("/", senderOnly, noticeCtl.Create)
	notices.Post("/contents", senderOnly, uploadLimiter, contentCtl.Create)
	notices.Post("/tags", staffOnly, relationCtl.CreateTag)
	notices.Post("/content-tags", staffOnly, relationCtl.CreateContentTag)
	notices.Post("/rows", senderOnly, relationCtl.CreateRow)
	// completion marking is open to every authenticated role
	notices.Post("/completions", completionCtl.Create)

	// literal paths must be registered before the :id wildcards
	notices.Patch("/contents/:id", senderOnly, contentCtl.Update)
	notices.Delete("/contents/:id", senderOnly, contentCtl.Delete)
	notices.Delete("/tags/:id", staffOnly, relationCtl.DeleteTag)
	notices.Delete("/content-tags", staffOnly, relationCtl.DeleteContentTag)
	notices.Delete("/rows/:id", senderOnly, relationCtl.DeleteRow)
	notices.Delete("/completions/:id", completionCtl.Delete)
	notices.Patch("/:id", senderOnly, noticeCtl.Update)
	notices.Delete("/:id", senderOnly, noticeCtl.Delete)
}
