package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestRazorpayClient(baseURL string) *RazorpayClient {
	return &RazorpayClient{
		KeyID:      "rzp_test_key",
		KeySecret:  "rzp_test_secret",
		APIBaseURL: baseURL,
		HTTPClient: http.DefaultClient,
	}
}

func TestRazorpayCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if body["amount"] != float64(50000) || body["currency"] != "INR" {
			t.Errorf("unexpected order payload: %v", body)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":       "order_ABC123",
			"amount":   50000,
			"currency": "INR",
			"receipt":  body["receipt"],
			"status":   "created",
		})
	}))
	defer srv.Close()

	client := newTestRazorpayClient(srv.URL)
	order, err := client.CreateOrder(context.Background(), 50000, "INR", "receipt_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != "order_ABC123" || order.Amount != 50000 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestRazorpayCreateOrder_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Amount exceeds maximum"}}`))
	}))
	defer srv.Close()

	client := newTestRazorpayClient(srv.URL)
	_, err := client.CreateOrder(context.Background(), 1<<40, "INR", "receipt_test")
	if !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestRazorpayCreateOrder_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestRazorpayClient(srv.URL)
	if _, err := client.CreateOrder(context.Background(), 50000, "INR", "r"); !errors.Is(err, ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestRazorpayCreateOrder_MissingCredentials(t *testing.T) {
	client := &RazorpayClient{HTTPClient: http.DefaultClient, APIBaseURL: "http://localhost:0"}
	if _, err := client.CreateOrder(context.Background(), 50000, "INR", "r"); err == nil {
		t.Fatalf("expected error without credentials")
	}
}

func TestRazorpayCreateOrder_NonPositiveAmount(t *testing.T) {
	client := newTestRazorpayClient("http://localhost:0")
	if _, err := client.CreateOrder(context.Background(), 0, "INR", "r"); err == nil {
		t.Fatalf("expected error for zero amount")
	}
}
