package repository

import (
	"gorm.io/gorm"

	"github.com/rohitpatre/raceday/app/models"
)

// RegistrationRepository defines the interface for registration-related
// database operations used by the web layer. Status transitions live in the
// payment package's repository; this one is read/report oriented.
type RegistrationRepository interface {
	Create(reg *models.Registration) error
	GetByID(id uint) (*models.Registration, error)
	GetByOrderID(orderID string) (*models.Registration, error)
	List(offset, limit int) ([]models.Registration, error)
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	Search(query string) ([]models.Registration, error)
}

// PaymentLogRepository defines the interface for payment failure log
// operations. The table is append-only; there are no update methods.
type PaymentLogRepository interface {
	Append(entry *models.PaymentFailureLog) error
	ListByOrderID(orderID string) ([]models.PaymentFailureLog, error)
	ListRecent(limit int) ([]models.PaymentFailureLog, error)
	Count() (int64, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Registration RegistrationRepository
	PaymentLog   PaymentLogRepository
}

// NewRepositories creates all repositories with the given database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Registration: NewRegistrationRepository(db),
		PaymentLog:   NewPaymentLogRepository(db),
	}
}
