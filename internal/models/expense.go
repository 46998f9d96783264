package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is one expense record, created from a CSV row or a manual add.
// Amount and Fee are exact decimals; dates are zone-naive (stored as UTC wall
// clock). All fields except ID are set once at creation and never patched.
type Expense struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Type          *string         `gorm:"size:64" json:"type"`
	Product       *string         `gorm:"size:128" json:"product"`
	StartedDate   *time.Time      `gorm:"index" json:"startedDate"`
	CompletedDate *time.Time      `json:"completedDate"`
	Description   *string         `gorm:"size:255" json:"description"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Fee           decimal.Decimal `gorm:"type:numeric;not null" json:"fee"`
	Currency      *string         `gorm:"size:8" json:"currency"`
	State         *string         `gorm:"size:32" json:"state"`
	Category      string          `gorm:"size:64;not null" json:"category"`
	Username      *string         `gorm:"size:64;index" json:"username"`
	CreatedAt     time.Time       `json:"-"`
}

// BeforeCreate assigns the opaque record id. The id is immutable afterwards.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
