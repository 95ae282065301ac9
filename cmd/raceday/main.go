package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/rohitpatre/raceday/internal/pkg/cache"
	"github.com/rohitpatre/raceday/internal/pkg/constants"
	"github.com/rohitpatre/raceday/internal/pkg/database"
	"github.com/rohitpatre/raceday/internal/pkg/env"
	"github.com/rohitpatre/raceday/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "5000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/raceday to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// ID-proof uploads land on local disk
	if err := os.MkdirAll(basePath+constants.IDProofUploadDir, 0o755); err != nil {
		panic(err)
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:     html.New(basePath+"views", ".html"),
		BodyLimit: 10 * 1024 * 1024, // registration form + ID proof
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// static files
	app.Static("/", basePath+"public/assets")
	app.Static(constants.UploadsRoute, basePath+"public/uploads")

	// ROUTER
	router.InstallRouter(app)

	return app
}
