package payment

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rohitpatre/raceday/app/models"
)

// TransitionOutcome classifies a conditional status update.
type TransitionOutcome int

const (
	// TransitionApplied: the registration was pending and is now terminal.
	TransitionApplied TransitionOutcome = iota
	// TransitionAlreadyCompleted: the registration was already completed.
	TransitionAlreadyCompleted
	// TransitionAlreadyFailed: the registration was already failed.
	TransitionAlreadyFailed
	// TransitionNotFound: no registration matches the order id.
	TransitionNotFound
)

// ListFilter narrows the registration listing. Zero values match everything.
type ListFilter struct {
	Search   string // case-insensitive substring over name, email, mobile
	Category string // exact match
	Status   string // exact match
}

// Repository provides the DB operations used by the payment service.
// Status transitions are single-statement compare-and-set updates guarded on
// the stored status, so racing callbacks cannot both mutate a registration.
type Repository interface {
	CreateRegistration(reg *models.Registration) error
	GetRegistrationByID(id uint) (*models.Registration, error)
	GetRegistrationByOrderID(orderID string) (*models.Registration, error)
	CompleteIfPending(orderID, paymentID, signature string) (TransitionOutcome, *models.Registration, error)
	FailIfPending(orderID string) (TransitionOutcome, *models.Registration, error)
	AppendFailureLog(entry *models.PaymentFailureLog) error
	ListRegistrations(filter ListFilter) ([]models.Registration, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateRegistration(reg *models.Registration) error {
	return r.db.Create(reg).Error
}

func (r *gormRepository) GetRegistrationByID(id uint) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.First(&reg, id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *gormRepository) GetRegistrationByOrderID(orderID string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.Where("order_id = ?", orderID).First(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// CompleteIfPending transitions a pending registration to completed and
// stores the verified payment id and signature. The WHERE clause on the
// stored status is the race guard: whichever callback lands first wins and
// later ones observe the terminal state.
func (r *gormRepository) CompleteIfPending(orderID, paymentID, signature string) (TransitionOutcome, *models.Registration, error) {
	tx := r.db.Model(&models.Registration{}).
		Where("order_id = ? AND payment_status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": models.PaymentStatusCompleted,
			"payment_id":     paymentID,
			"signature":      signature,
		})
	if tx.Error != nil {
		return 0, nil, tx.Error
	}
	return r.classify(orderID, tx.RowsAffected)
}

// FailIfPending transitions a pending registration to failed. Terminal
// states are left untouched.
func (r *gormRepository) FailIfPending(orderID string) (TransitionOutcome, *models.Registration, error) {
	tx := r.db.Model(&models.Registration{}).
		Where("order_id = ? AND payment_status = ?", orderID, models.PaymentStatusPending).
		Update("payment_status", models.PaymentStatusFailed)
	if tx.Error != nil {
		return 0, nil, tx.Error
	}
	return r.classify(orderID, tx.RowsAffected)
}

// classify re-reads the row after a conditional update to distinguish
// "applied" from the terminal state that blocked it.
func (r *gormRepository) classify(orderID string, rowsAffected int64) (TransitionOutcome, *models.Registration, error) {
	reg, err := r.GetRegistrationByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransitionNotFound, nil, nil
		}
		return 0, nil, err
	}
	if rowsAffected > 0 {
		return TransitionApplied, reg, nil
	}
	switch reg.PaymentStatus {
	case models.PaymentStatusCompleted:
		return TransitionAlreadyCompleted, reg, nil
	case models.PaymentStatusFailed:
		return TransitionAlreadyFailed, reg, nil
	default:
		// Pending with zero rows affected means the row appeared between the
		// update and the re-read; the caller treats it as not found and retries.
		return TransitionNotFound, reg, nil
	}
}

func (r *gormRepository) AppendFailureLog(entry *models.PaymentFailureLog) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListRegistrations(filter ListFilter) ([]models.Registration, error) {
	q := r.db.Model(&models.Registration{})
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(mobile_no) LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("payment_status = ?", filter.Status)
	}

	var regs []models.Registration
	err := q.Order("created_at DESC").Find(&regs).Error
	return regs, err
}
