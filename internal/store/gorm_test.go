package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Giusk10/SpendyApp/internal/config"
	"github.com/Giusk10/SpendyApp/internal/database"
	"github.com/Giusk10/SpendyApp/internal/models"
)

func newTestStore(t *testing.T) *GormStore {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("database.Init() error = %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("database.AutoMigrate() error = %v", err)
	}
	return NewGormStore(db)
}

func ptr[T any](v T) *T { return &v }

func sampleExpense(started, completed *time.Time) *models.Expense {
	return &models.Expense{
		StartedDate:   started,
		CompletedDate: completed,
		Description:   ptr("Lidl groceries"),
		Amount:        decimal.RequireFromString("-12.50"),
		Fee:           decimal.Zero,
		Category:      "Supermercati e Alimentari",
		Username:      ptr("giuseppe"),
	}
}

func TestSave_AssignsID(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)
	completed := started.Add(5 * time.Minute)

	id, err := st.Save(sampleExpense(&started, &completed))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if id == "" {
		t.Fatal("Save() returned empty id")
	}

	count, err := st.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestExistsByStartEnd(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)
	completed := started.Add(5 * time.Minute)
	if _, err := st.Save(sampleExpense(&started, &completed)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err := st.ExistsByStartEnd(&started, &completed)
	if err != nil {
		t.Fatalf("ExistsByStartEnd() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByStartEnd(same dates) = false, want true")
	}

	other := started.Add(time.Hour)
	exists, err = st.ExistsByStartEnd(&other, &completed)
	if err != nil {
		t.Fatalf("ExistsByStartEnd() error = %v", err)
	}
	if exists {
		t.Error("ExistsByStartEnd(different start) = true, want false")
	}
}

// TestExistsByStartEnd_NilDates tests the IS NULL path: a record with no
// completion time must still be found as a duplicate of itself.
func TestExistsByStartEnd_NilDates(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	if _, err := st.Save(sampleExpense(&started, nil)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err := st.ExistsByStartEnd(&started, nil)
	if err != nil {
		t.Fatalf("ExistsByStartEnd() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByStartEnd(started, nil) = false, want true")
	}

	exists, err = st.ExistsByStartEnd(nil, nil)
	if err != nil {
		t.Fatalf("ExistsByStartEnd() error = %v", err)
	}
	if exists {
		t.Error("ExistsByStartEnd(nil, nil) = true, want false")
	}
}

func TestExistsByDescriptionAmount(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 10, 0, 0, 0, time.UTC)
	if _, err := st.Save(sampleExpense(&started, nil)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err := st.ExistsByDescriptionAmount(ptr("Lidl groceries"), decimal.RequireFromString("-12.50"))
	if err != nil {
		t.Fatalf("ExistsByDescriptionAmount() error = %v", err)
	}
	if !exists {
		t.Error("ExistsByDescriptionAmount(match) = false, want true")
	}

	exists, err = st.ExistsByDescriptionAmount(ptr("Lidl groceries"), decimal.RequireFromString("-99.00"))
	if err != nil {
		t.Fatalf("ExistsByDescriptionAmount() error = %v", err)
	}
	if exists {
		t.Error("ExistsByDescriptionAmount(other amount) = true, want false")
	}
}

func TestFindAllByStartedAsc(t *testing.T) {
	st := newTestStore(t)

	for _, day := range []int{20, 10, 15} {
		started := time.Date(2023, 6, day, 0, 0, 0, 0, time.UTC)
		completed := started.Add(time.Hour)
		if _, err := st.Save(sampleExpense(&started, &completed)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := st.FindAllByStartedAsc()
	if err != nil {
		t.Fatalf("FindAllByStartedAsc() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("FindAllByStartedAsc() len = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartedDate.Before(*got[i-1].StartedDate) {
			t.Errorf("result not ascending at index %d", i)
		}
	}
}

func TestDeleteByID(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	id, err := st.Save(sampleExpense(&started, nil))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	deleted, err := st.DeleteByID(id)
	if err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if !deleted {
		t.Error("DeleteByID(existing) = false, want true")
	}

	deleted, err = st.DeleteByID(id)
	if err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if deleted {
		t.Error("DeleteByID(already gone) = true, want false")
	}
}

// TestAmountRoundTrip tests that the numeric column preserves exact decimal
// values through a write and read.
func TestAmountRoundTrip(t *testing.T) {
	st := newTestStore(t)

	started := time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)
	e := sampleExpense(&started, nil)
	e.Amount = decimal.RequireFromString("-45.30")
	if _, err := st.Save(e); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all, err := st.FindAll()
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if want := decimal.RequireFromString("-45.30"); !all[0].Amount.Equal(want) {
		t.Errorf("round-tripped amount = %s, want %s", all[0].Amount, want)
	}
}
