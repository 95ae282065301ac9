package router

import (
	"github.com/gofiber/fiber/v2"
)

// Router installs a group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

func InstallRouter(app *fiber.App) {
	// Install HttpRouter first to initialize the session store and the admin
	// controller. API routes depend on the session middleware being ready.
	setup(app, NewHttpRouter(), NewApiRouter())
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
