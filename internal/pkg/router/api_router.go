package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/rohitpatre/raceday/app/controllers"
	"github.com/rohitpatre/raceday/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// Payment flow: order creation, gateway callback relay, failure reports
	api.Post("/create-order", controllers.HandleCreateOrder)
	api.Post("/verify-payment", controllers.HandleVerifyPayment)
	api.Post("/log-payment-failure", controllers.HandleLogPaymentFailure)

	// Admin listing
	api.Get("/runners", middleware.RequireAdminAPI, controllers.HandleListRegistrations)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
