package models

import "time"

// PaymentFailureLog stores one payment-failure event for diagnostics.
// Rows are append-only and are never updated or read by the payment core;
// the dashboard consumes them for manual reconciliation. Identity fields are
// client-supplied and best-effort, OrderID is the join key to registrations
// but carries no referential constraint.
type PaymentFailureLog struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FirstName        string    `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName         string    `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Email            string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	MobileNo         string    `gorm:"type:varchar(20)" json:"mobile_no,omitempty"`
	Category         string    `gorm:"type:varchar(30)" json:"category,omitempty"`
	OrderID          string    `gorm:"type:varchar(64);not null;index" json:"order_id"`
	PaymentID        string    `gorm:"type:varchar(64)" json:"payment_id,omitempty"`
	ErrorCode        string    `gorm:"type:varchar(50)" json:"error_code,omitempty"`
	ErrorDescription string    `gorm:"type:text" json:"error_description,omitempty"`
	ErrorSource      string    `gorm:"type:varchar(50)" json:"error_source,omitempty"`
	ErrorStep        string    `gorm:"type:varchar(50)" json:"error_step,omitempty"`
	ErrorReason      string    `gorm:"type:varchar(100)" json:"error_reason,omitempty"`
	MetadataJSON     string    `gorm:"type:longtext" json:"metadata_json,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
