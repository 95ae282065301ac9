package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/verify-payment", HandleVerifyPayment)
	app.Post("/api/log-payment-failure", HandleLogPaymentFailure)
	return app
}

func TestHandleVerifyPaymentRejectsIncompleteCallback(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: `{}`},
		{name: "missing signature", body: `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1"}`},
		{name: "missing payment id", body: `{"razorpay_order_id":"order_1","razorpay_signature":"abc"}`},
		{name: "missing order id", body: `{"razorpay_payment_id":"pay_1","razorpay_signature":"abc"}`},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/api/verify-payment", strings.NewReader(tt.body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err, tt.name)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, tt.name)
	}
}

func TestHandleVerifyPaymentRejectsMalformedBody(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/verify-payment", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleLogPaymentFailureRequiresOrderID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/log-payment-failure", strings.NewReader(`{"error":{"code":"BAD_REQUEST_ERROR"}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
