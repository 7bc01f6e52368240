package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"labadmin_backend/internals/configs"
	database "labadmin_backend/internals/databases"
	"labadmin_backend/internals/helpers/blob"
	"labadmin_backend/internals/middlewares"
	"labadmin_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		AppName:     "labadmin_backend",
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   64 * 1024 * 1024,
	})

	app.Use(requestid.New())
	app.Use(compress.New())
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	blobs := blob.NewLocalService(configs.BlobDir)

	route.SetupRoutes(app, database.DB, blobs)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🔌 Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Shutdown error: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "3000")
	log.Printf("✅ Listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
