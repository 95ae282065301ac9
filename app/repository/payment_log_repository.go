package repository

import (
	"gorm.io/gorm"

	"github.com/rohitpatre/raceday/app/models"
)

// paymentLogRepository implements the PaymentLogRepository interface
type paymentLogRepository struct {
	db *gorm.DB
}

// NewPaymentLogRepository creates a new payment log repository instance
func NewPaymentLogRepository(db *gorm.DB) PaymentLogRepository {
	return &paymentLogRepository{db: db}
}

// Append inserts a new failure log entry
func (r *paymentLogRepository) Append(entry *models.PaymentFailureLog) error {
	return r.db.Create(entry).Error
}

// ListByOrderID returns all failure entries recorded for an order
func (r *paymentLogRepository) ListByOrderID(orderID string) ([]models.PaymentFailureLog, error) {
	var entries []models.PaymentFailureLog
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// ListRecent returns the most recent failure entries
func (r *paymentLogRepository) ListRecent(limit int) ([]models.PaymentFailureLog, error) {
	var entries []models.PaymentFailureLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// Count returns the total number of failure entries
func (r *paymentLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PaymentFailureLog{}).Count(&count).Error
	return count, err
}
