// Package store is the durable keyed storage for expense records.
package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Giusk10/SpendyApp/internal/models"
)

// ExpenseStore is the persistence contract consumed by the service layer.
// The store is the only shared mutable resource; callers rely on its own
// consistency guarantees (read-after-write within a request) and do no
// locking of their own.
type ExpenseStore interface {
	// Save persists a new record and returns its store-assigned id.
	Save(e *models.Expense) (string, error)

	// ExistsByStartEnd reports whether a record with the same
	// (startedDate, completedDate) pair already exists.
	ExistsByStartEnd(started, completed *time.Time) (bool, error)

	// ExistsByDescriptionAmount is the stricter duplicate probe.
	ExistsByDescriptionAmount(description *string, amount decimal.Decimal) (bool, error)

	// FindAllByStartedAsc returns every record ordered by startedDate ascending.
	FindAllByStartedAsc() ([]models.Expense, error)

	// FindAll returns every record in storage order.
	FindAll() ([]models.Expense, error)

	// DeleteByID removes a record, reporting whether it existed.
	DeleteByID(id string) (bool, error)

	// Count returns the number of stored records.
	Count() (int64, error)
}
