package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/rohitpatre/raceday/app/models"
	"github.com/rohitpatre/raceday/internal/pkg/constants"
	"github.com/rohitpatre/raceday/internal/pkg/database"
	"github.com/rohitpatre/raceday/internal/pkg/env"
	"github.com/rohitpatre/raceday/internal/pkg/payment"
	"github.com/rohitpatre/raceday/internal/pkg/upload"
)

// HandleCreateOrder validates the registration form, mints a gateway order
// for the category fee and stores a pending registration. The response
// carries everything the browser needs to open the checkout widget.
// Request: multipart form (registrant fields + optional id_proof file) or JSON.
func HandleCreateOrder(c *fiber.Ctx) error {
	var input models.RegistrationInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	idProofPath, err := saveIDProof(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	result, err := svc.CreateOrder(ctx, input, idProofPath)
	if err != nil {
		return respondCreateOrderError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"registration_id": result.Registration.ID,
		"order":           result.Order,
		"key_id":          env.GetEnv("RAZORPAY_KEY_ID", ""),
	})
}

func respondCreateOrderError(c *fiber.Ctx, err error) error {
	var vErrs validator.ValidationErrors
	var pErr *payment.PersistenceError
	switch {
	case errors.Is(err, payment.ErrInvalidCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid category"})
	case errors.As(err, &vErrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid registration data", "detail": vErrs.Error()})
	case errors.As(err, &pErr):
		// The gateway order exists without a local registration; surface it
		// distinctly so operators can reconcile manually.
		fiberlog.Error(fmt.Sprintf("order %s minted but not persisted: %v", pErr.OrderID, pErr))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    "registration could not be saved",
			"order_id": pErr.OrderID,
		})
	case errors.Is(err, payment.ErrGatewayUnavailable):
		fiberlog.Warn(fmt.Sprintf("gateway order creation failed: %v", err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "payment gateway unavailable, please retry"})
	default:
		fiberlog.Error(fmt.Sprintf("create order failed: %v", err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create order"})
	}
}

// saveIDProof stores an optional ID-proof upload under the uploads dir and
// returns its relative path. A missing file is not an error.
func saveIDProof(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("id_proof")
	if err != nil || fileHeader == nil {
		return "", nil
	}
	if fileHeader.Size > upload.MaxIDProofBytes {
		return "", errors.New("ID proof exceeds the 5 MB limit")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("could not read ID proof upload")
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return "", errors.New("could not read ID proof upload")
	}
	if _, err := upload.ValidateIDProofBySniff(fileHeader.Filename, head[:n]); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	dest := filepath.Join(constants.IDProofUploadDir, filename)
	if err := c.SaveFile(fileHeader, dest); err != nil {
		fiberlog.Error(fmt.Sprintf("failed to save id proof: %v", err))
		return "", errors.New("could not store ID proof upload")
	}
	return dest, nil
}

// HandleVerifyPayment finalizes a registration from the gateway success
// callback relayed by the browser. Replayed success callbacks are idempotent.
func HandleVerifyPayment(c *fiber.Ctx) error {
	var req struct {
		OrderID   string `json:"razorpay_order_id" form:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id" form:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature" form:"razorpay_signature"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order id, payment id and signature are required"})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	reg, err := svc.VerifyPayment(ctx, req.OrderID, req.PaymentID, req.Signature)
	switch {
	case err == nil:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Registration and payment successful!",
			"data":    reg,
		})
	case errors.Is(err, payment.ErrInvalidSignature):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payment signature"})
	case errors.Is(err, payment.ErrUnknownOrder):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "unknown order"})
	case errors.Is(err, payment.ErrAlreadyFailed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "payment was already marked failed for this order"})
	default:
		fiberlog.Error(fmt.Sprintf("payment verification failed for order %s: %v", req.OrderID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "payment verification failed"})
	}
}

// HandleLogPaymentFailure records a gateway-side failure reported by the
// browser (cancelled checkout, declined card). A missing registration never
// fails the request; only a failed log write does.
func HandleLogPaymentFailure(c *fiber.Ctx) error {
	var input payment.FailureInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if input.OrderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order_id is required"})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := svc.LogPaymentFailure(ctx, input); err != nil {
		fiberlog.Error(fmt.Sprintf("failed to log payment failure for order %s: %v", input.OrderID, err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to log payment failure"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "payment failure logged"})
}

// HandleListRegistrations returns a filtered snapshot of registrations for
// the admin dashboard API.
// Query: q (substring over name/email/mobile), category, status.
func HandleListRegistrations(c *fiber.Ctx) error {
	filter := payment.ListFilter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	regs, err := svc.List(c.Context(), filter)
	if err != nil {
		fiberlog.Error(fmt.Sprintf("failed to list registrations: %v", err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage unavailable"})
	}
	return c.JSON(fiber.Map{"count": len(regs), "data": regs})
}

// HandleRegistrationSuccess renders the confirmation page for a completed
// registration.
func HandleRegistrationSuccess(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("index", fiber.Map{"Message": "Registration not found"})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	reg, err := svc.GetRegistration(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, payment.ErrUnknownOrder) {
			return c.Status(fiber.StatusNotFound).Render("index", fiber.Map{"Message": "Registration not found"})
		}
		fiberlog.Error(fmt.Sprintf("failed to load registration %d: %v", id, err))
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	return c.Render("success", fiber.Map{"Registration": reg})
}
