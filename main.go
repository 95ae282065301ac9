package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
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

	if err := os.MkdirAll(constants.IDProofUploadDir, 0o755); err != nil {
		panic(err)
	}

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 10 * 1024 * 1024, // registration form + ID proof
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())
	app.Static("/", "./public/assets")
	app.Static(constants.UploadsRoute, "./public/uploads")

	// ROUTER
	router.InstallRouter(app)

	return app
}
