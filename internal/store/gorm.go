package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Giusk10/SpendyApp/internal/models"
)

// GormStore implements ExpenseStore on a gorm database handle.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) Save(e *models.Expense) (string, error) {
	if err := s.DB.Create(e).Error; err != nil {
		return "", fmt.Errorf("save expense: %w", err)
	}
	return e.ID, nil
}

// nullableTimeClause matches a nullable timestamp column against a possibly
// nil value; "= NULL" never matches in SQL, so nil needs IS NULL.
func nullableTimeClause(q *gorm.DB, column string, v *time.Time) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

func (s *GormStore) ExistsByStartEnd(started, completed *time.Time) (bool, error) {
	q := s.DB.Model(&models.Expense{})
	q = nullableTimeClause(q, "started_date", started)
	q = nullableTimeClause(q, "completed_date", completed)

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check duplicate by dates: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) ExistsByDescriptionAmount(description *string, amount decimal.Decimal) (bool, error) {
	q := s.DB.Model(&models.Expense{}).Where("amount = ?", amount)
	if description == nil {
		q = q.Where("description IS NULL")
	} else {
		q = q.Where("description = ?", *description)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check duplicate by description: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) FindAllByStartedAsc() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.DB.Order("started_date ASC").Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *GormStore) FindAll() ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.DB.Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func (s *GormStore) DeleteByID(id string) (bool, error) {
	res := s.DB.Delete(&models.Expense{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("delete expense: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Count() (int64, error) {
	var count int64
	if err := s.DB.Model(&models.Expense{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return count, nil
}
