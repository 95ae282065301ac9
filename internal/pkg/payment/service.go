package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rohitpatre/raceday/app/models"
	"github.com/rohitpatre/raceday/internal/pkg/env"
)

// Failure source/step tags written into the failure log.
const (
	FailureSourceFrontend     = "frontend"
	FailureSourceVerification = "backend_verification"
	FailureSourceOrderCreate  = "order_creation"

	FailureStepPersist = "persist"
	FailureStepVerify  = "verify"
)

// CreateOrderResult is returned to the browser so it can open the checkout
// widget (gateway order + key id) and later report back the registration.
type CreateOrderResult struct {
	Registration *models.Registration `json:"registration"`
	Order        *GatewayOrder        `json:"order"`
}

// ErrorDetail is the structured error a failure report carries. Metadata is
// an opaque blob (gateway error payloads have no stable shape).
type ErrorDetail struct {
	Code        string         `json:"code,omitempty"`
	Description string         `json:"description,omitempty"`
	Source      string         `json:"source,omitempty"`
	Step        string         `json:"step,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// FailureInput is a gateway-side failure reported by the browser. Identity
// fields are untrusted and used for diagnostics only.
type FailureInput struct {
	FirstName string      `json:"first_name" form:"first_name"`
	LastName  string      `json:"last_name" form:"last_name"`
	Email     string      `json:"email" form:"email"`
	MobileNo  string      `json:"mobile_no" form:"mobile_no"`
	Category  string      `json:"category" form:"category"`
	OrderID   string      `json:"order_id" form:"order_id"`
	PaymentID string      `json:"payment_id" form:"payment_id"`
	Error     ErrorDetail `json:"error" form:"error"`
}

// Service orchestrates order creation and payment verification against the
// gateway and the registration store.
type Service struct {
	repo     Repository
	gateway  Gateway
	secret   string
	currency string
}

// NewService creates a payment service from injected collaborators.
func NewService(repo Repository, gateway Gateway, secret, currency string) *Service {
	if currency == "" {
		currency = "INR"
	}
	return &Service{repo: repo, gateway: gateway, secret: secret, currency: currency}
}

// NewServiceFromDB wires the service with the GORM repository and the
// env-configured Razorpay client.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(
		NewRepository(db),
		NewRazorpayClientFromEnv(),
		env.GetEnv("RAZORPAY_KEY_SECRET", ""),
		env.GetEnv("PAYMENT_CURRENCY", "INR"),
	)
}

// CreateOrder validates the registrant payload, mints a gateway order for
// the category fee and persists a pending registration keyed by the order
// id. A failed gateway call leaves no trace; a failed local save after a
// successful mint is the one inconsistency that can't be rolled back, so it
// is logged for manual reconciliation and surfaced as *PersistenceError.
func (s *Service) CreateOrder(ctx context.Context, input models.RegistrationInput, idProofPath string) (*CreateOrderResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	fee, err := FeeFor(input.Category)
	if err != nil {
		return nil, err
	}

	receipt := "receipt_" + uuid.NewString()
	order, err := s.gateway.CreateOrder(ctx, fee*100, s.currency, receipt)
	if err != nil {
		if errors.Is(err, ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	reg := &models.Registration{
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		MobileNo:      strings.TrimSpace(input.MobileNo),
		Gender:        input.Gender,
		Category:      input.Category,
		Fee:           fee,
		OrderID:       order.ID,
		PaymentStatus: models.PaymentStatusPending,
		IDProofPath:   idProofPath,
	}
	if err := s.repo.CreateRegistration(reg); err != nil {
		s.appendFailureLog(&models.PaymentFailureLog{
			FirstName:        reg.FirstName,
			LastName:         reg.LastName,
			Email:            reg.Email,
			MobileNo:         reg.MobileNo,
			Category:         reg.Category,
			OrderID:          order.ID,
			ErrorDescription: err.Error(),
			ErrorSource:      FailureSourceOrderCreate,
			ErrorStep:        FailureStepPersist,
		})
		return nil, &PersistenceError{OrderID: order.ID, Err: err}
	}

	return &CreateOrderResult{Registration: reg, Order: order}, nil
}

// VerifyPayment finalizes a registration from the gateway's success
// callback. The signature check runs first; only then is the status
// transition attempted, as a compare-and-set so replayed or racing callbacks
// cannot mutate a terminal registration.
//
// An already-completed registration with a matching callback is an
// idempotent replay and succeeds without a second mutation. An
// already-failed one is a terminal-state conflict reported as
// ErrAlreadyFailed.
func (s *Service) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) (*models.Registration, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrUnknownOrder
	}

	if !VerifySignature(orderID, paymentID, signature, s.secret) {
		outcome, _, err := s.repo.FailIfPending(orderID)
		if err != nil {
			s.logVerificationFault(orderID, paymentID, err)
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if outcome == TransitionNotFound {
			return nil, ErrUnknownOrder
		}
		return nil, ErrInvalidSignature
	}

	outcome, reg, err := s.repo.CompleteIfPending(orderID, paymentID, signature)
	if err != nil {
		s.logVerificationFault(orderID, paymentID, err)
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	switch outcome {
	case TransitionApplied, TransitionAlreadyCompleted:
		return reg, nil
	case TransitionAlreadyFailed:
		return nil, ErrAlreadyFailed
	default:
		return nil, ErrUnknownOrder
	}
}

// LogPaymentFailure records a gateway-side failure reported by the browser
// (cancelled checkout, declined card). If a pending registration matches,
// it is marked failed; a missing or already-terminal registration is not an
// error, the log entry is written regardless. Only a failure to write the
// log itself is reported.
func (s *Service) LogPaymentFailure(ctx context.Context, input FailureInput) error {
	if strings.TrimSpace(input.OrderID) == "" {
		return fmt.Errorf("%w: order id is required", ErrLogWrite)
	}

	if _, _, err := s.repo.FailIfPending(input.OrderID); err != nil {
		fiberlog.Warn(fmt.Sprintf("payment failure for order %s: status update skipped: %v", input.OrderID, err))
	}

	entry := &models.PaymentFailureLog{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		MobileNo:         input.MobileNo,
		Category:         input.Category,
		OrderID:          input.OrderID,
		PaymentID:        input.PaymentID,
		ErrorCode:        input.Error.Code,
		ErrorDescription: input.Error.Description,
		ErrorSource:      input.Error.Source,
		ErrorStep:        input.Error.Step,
		ErrorReason:      input.Error.Reason,
		MetadataJSON:     marshalMetadata(input.Error.Metadata),
	}
	if entry.ErrorSource == "" {
		entry.ErrorSource = FailureSourceFrontend
	}
	if err := s.repo.AppendFailureLog(entry); err != nil {
		return fmt.Errorf("%w: %v", ErrLogWrite, err)
	}
	return nil
}

// GetRegistration fetches a registration by its internal id.
func (s *Service) GetRegistration(ctx context.Context, id uint) (*models.Registration, error) {
	reg, err := s.repo.GetRegistrationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownOrder
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return reg, nil
}

// List returns a filtered snapshot of registrations, newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]models.Registration, error) {
	regs, err := s.repo.ListRegistrations(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return regs, nil
}

// logVerificationFault best-effort records an unexpected storage fault hit
// during verification. The append must never mask the original error, so
// its own failure is only logged.
func (s *Service) logVerificationFault(orderID, paymentID string, cause error) {
	s.appendFailureLog(&models.PaymentFailureLog{
		OrderID:          orderID,
		PaymentID:        paymentID,
		ErrorDescription: cause.Error(),
		ErrorSource:      FailureSourceVerification,
		ErrorStep:        FailureStepVerify,
	})
}

func (s *Service) appendFailureLog(entry *models.PaymentFailureLog) {
	if err := s.repo.AppendFailureLog(entry); err != nil {
		fiberlog.Error(fmt.Sprintf("failed to append payment failure log for order %s: %v", entry.OrderID, err))
	}
}

func marshalMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(raw)
}
