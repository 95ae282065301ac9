package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sujit-baniya/flash"
	"golang.org/x/crypto/bcrypt"

	"github.com/rohitpatre/raceday/app/models"
	"github.com/rohitpatre/raceday/app/repository"
	"github.com/rohitpatre/raceday/internal/pkg/database"
	"github.com/rohitpatre/raceday/internal/pkg/env"
	"github.com/rohitpatre/raceday/internal/pkg/middleware"
	"github.com/rohitpatre/raceday/internal/pkg/payment"
	"github.com/rohitpatre/raceday/internal/pkg/session"
)

// AdminController handles the admin web flow using the repository pattern
type AdminController struct {
	repos *repository.Repositories
}

var adminController *AdminController

// InitializeAdminController wires the admin controller with repositories
func InitializeAdminController() {
	repository.InitializeFactory(database.GetDB())
	adminController = NewAdminController(repository.GetGlobalFactory().GetRepositories())
}

// GetAdminController returns the initialized admin controller
func GetAdminController() *AdminController {
	return adminController
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories) *AdminController {
	return &AdminController{
		repos: repos,
	}
}

// HandleLoginPage renders the admin login form
func (ac *AdminController) HandleLoginPage(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{"Flash": flash.Get(c)})
}

// HandleLogin checks the env-configured admin credential and starts a session.
// The password is compared against a bcrypt hash; the plain credential never
// lives in the binary or the repo.
func (ac *AdminController) HandleLogin(c *fiber.Ctx) error {
	fm := fiber.Map{"type": "error"}

	username := c.FormValue("username")
	password := c.FormValue("password")

	expectedUser := env.GetEnv("ADMIN_USER", "admin")
	passwordHash := env.GetEnv("ADMIN_PASSWORD_HASH", "")
	if passwordHash == "" {
		fiberlog.Error("ADMIN_PASSWORD_HASH is not configured; refusing admin login")
		fm["message"] = "Admin login is not configured"
		return flash.WithError(c, fm).Redirect("/login")
	}

	if username != expectedUser ||
		bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		fm["message"] = "Invalid username or password"
		return flash.WithError(c, fm).Redirect("/login")
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/login")
	}

	sess.Set(middleware.AdminAuthKey, true)
	if err := sess.Save(); err != nil {
		fm["message"] = fmt.Sprintf("something went wrong: %s", err)
		return flash.WithError(c, fm).Redirect("/login")
	}

	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

// HandleLogout destroys the admin session
func (ac *AdminController) HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if err := sess.Destroy(); err != nil {
			fiberlog.Warn(fmt.Sprintf("failed to destroy admin session: %v", err))
		}
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// HandleDashboard renders the registration dashboard with the filtered
// listing and the payment counters.
// Query: q (substring search), category, status.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	filter := payment.ListFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	regs, err := svc.List(c.Context(), filter)
	if err != nil {
		return ac.handleError(c, "Failed to list registrations", err)
	}

	total, err := ac.repos.Registration.Count()
	if err != nil {
		return ac.handleError(c, "Failed to count registrations", err)
	}
	completed, _ := ac.repos.Registration.CountByStatus(models.PaymentStatusCompleted)
	pending, _ := ac.repos.Registration.CountByStatus(models.PaymentStatusPending)
	failed, _ := ac.repos.Registration.CountByStatus(models.PaymentStatusFailed)

	recentFailures, err := ac.repos.PaymentLog.ListRecent(10)
	if err != nil {
		fiberlog.Warn(fmt.Sprintf("failed to load recent payment failures: %v", err))
	}

	return c.Render("dashboard", fiber.Map{
		"Registrations":  regs,
		"Total":          total,
		"Completed":      completed,
		"Pending":        pending,
		"Failed":         failed,
		"RecentFailures": recentFailures,
		"Categories":     payment.Categories(),
		"Filter":         filter,
	})
}

// handleError logs and renders a generic admin error
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	fiberlog.Error(fmt.Sprintf("%s: %v", message, err))
	return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
}
