package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/rohitpatre/raceday/app/models"
)

// registrationRepository implements the RegistrationRepository interface
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new registration repository instance
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create creates a new registration in the database
func (r *registrationRepository) Create(reg *models.Registration) error {
	return r.db.Create(reg).Error
}

// GetByID retrieves a registration by its ID
func (r *registrationRepository) GetByID(id uint) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.First(&reg, id).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// GetByOrderID retrieves a registration by its gateway order id
func (r *registrationRepository) GetByOrderID(orderID string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.Where("order_id = ?", orderID).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// List retrieves registrations with pagination, newest first
func (r *registrationRepository) List(offset, limit int) ([]models.Registration, error) {
	var regs []models.Registration
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&regs).Error
	return regs, err
}

// Count returns the total number of registrations
func (r *registrationRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of registrations in the given status
func (r *registrationRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).Where("payment_status = ?", status).Count(&count).Error
	return count, err
}

// Search finds registrations by name, email or mobile number substring
func (r *registrationRepository) Search(query string) ([]models.Registration, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var regs []models.Registration
	err := r.db.
		Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(mobile_no) LIKE ?",
			like, like, like, like).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}
