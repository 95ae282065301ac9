package models

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Payment status values for a registration. A registration is created
// pending and moves exactly once to completed or failed.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Gender values accepted on the registration form
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Registration represents one participant's attempt to register and pay.
// Fee is derived from the category table at order time and never taken from
// the client. OrderID is assigned by the payment gateway and is immutable.
type Registration struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	FirstName     string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName      string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email         string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	MobileNo      string    `gorm:"type:varchar(20);not null" json:"mobile_no"`
	Gender        string    `gorm:"type:varchar(10);not null" json:"gender"`
	Category      string    `gorm:"type:varchar(30);not null;index" json:"category"`
	Fee           int       `gorm:"not null" json:"fee"`
	OrderID       string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_id"`
	PaymentID     string    `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	Signature     string    `gorm:"type:varchar(128)" json:"-"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	IDProofPath   string    `gorm:"type:varchar(255)" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RegistrationInput is the validated registration form payload.
type RegistrationInput struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	MobileNo  string `json:"mobile_no" form:"mobile_no" validate:"required,indian_mobile"`
	Gender    string `json:"gender" form:"gender" validate:"required,oneof=Male Female Other"`
	Category  string `json:"category" form:"category" validate:"required"`
}

// +91 followed by a 10-digit Indian mobile number
var mobileNoPattern = regexp.MustCompile(`^\+91[6-9]\d{9}$`)

var registrationValidate = newRegistrationValidator()

func newRegistrationValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("indian_mobile", func(fl validator.FieldLevel) bool {
		return mobileNoPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the registration payload against the form rules.
func (in *RegistrationInput) Validate() error {
	return registrationValidate.Struct(in)
}

// IsTerminal reports whether the registration reached a final payment state.
func (r *Registration) IsTerminal() bool {
	return r.PaymentStatus == PaymentStatusCompleted || r.PaymentStatus == PaymentStatusFailed
}
