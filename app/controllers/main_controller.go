package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rohitpatre/raceday/internal/pkg/payment"
)

// HandleHome renders the registration page with the category fee table.
func HandleHome(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Categories": payment.Categories(),
	})
}
