package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rohitpatre/raceday/app/controllers"
	"github.com/rohitpatre/raceday/internal/pkg/middleware"
	"github.com/rohitpatre/raceday/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Initialize admin controller with repositories
	controllers.InitializeAdminController()

	// Registration page
	app.Get("/", controllers.HandleHome)
	app.Get("/registration-success/:id", controllers.HandleRegistrationSuccess)

	// Admin login flow
	admin := controllers.GetAdminController()
	app.Get("/login", admin.HandleLoginPage)
	app.Post("/login", admin.HandleLogin)
	app.Get("/logout", admin.HandleLogout)

	// Protected admin routes
	app.Get("/admin/dashboard", middleware.RequireAdmin, admin.HandleDashboard)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
