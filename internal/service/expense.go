// Package service implements the expense ingestion pipeline and the
// query/aggregation engine on top of the store and verifier collaborators.
package service

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Giusk10/SpendyApp/internal/auth"
	"github.com/Giusk10/SpendyApp/internal/classifier"
	"github.com/Giusk10/SpendyApp/internal/csvimport"
	"github.com/Giusk10/SpendyApp/internal/models"
	"github.com/Giusk10/SpendyApp/internal/store"
)

// windowLayout is the strict format for date-window query bounds.
const windowLayout = "2006-01-02 15:04:05"

// ExpenseService orchestrates parsing, classification, dedupe and storage.
// It holds no per-request state; the store is the only shared mutable
// resource.
type ExpenseService struct {
	Store        store.ExpenseStore
	Verifier     auth.TokenVerifier
	StrictDedupe bool
	Log          zerolog.Logger
}

func New(st store.ExpenseStore, v auth.TokenVerifier, strictDedupe bool, log zerolog.Logger) *ExpenseService {
	return &ExpenseService{
		Store:        st,
		Verifier:     v,
		StrictDedupe: strictDedupe,
		Log:          log,
	}
}

// resolveOwner maps the bearer token to a username pointer. Verification
// failure yields a nil owner, not an error; records ingested with an
// unverifiable token are stored ownerless.
func (s *ExpenseService) resolveOwner(token string) *string {
	username, err := s.Verifier.Verify(token)
	if err != nil || username == "" {
		return nil
	}
	return &username
}

// Import ingests a delimited text stream and returns the number of records
// persisted. The owner is resolved once per call and reused for every row.
//
// Failure policy: a date-parse failure on any row aborts the remaining rows
// but rows already persisted stay persisted; amounts never fail hard and
// degrade to zero instead.
func (s *ExpenseService) Import(r io.Reader, token string) (int, error) {
	br := bufio.NewReader(r)

	headerLine, err := readLine(br)
	if err != nil && headerLine == "" {
		return 0, errEmptyInput()
	}
	if strings.TrimSpace(headerLine) == "" {
		return 0, errNoHeader()
	}

	sep := csvimport.DetectSeparator(headerLine)

	hr := csv.NewReader(strings.NewReader(headerLine))
	hr.Comma = sep
	header, err := hr.Read()
	if err != nil {
		return 0, errNoHeader()
	}
	idx := csvimport.ResolveHeader(header)

	owner := s.resolveOwner(token)

	reader := csv.NewReader(br)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	imported := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, errMalformed("malformed CSV row", err.Error())
		}

		cell := func(field string) *string {
			i, ok := idx[field]
			return csvimport.CellAt(row, i, ok)
		}

		startedRaw := cell(csvimport.FieldStartedDate)
		started, err := parseTimestampPtr(startedRaw)
		if err != nil {
			return imported, errDateParse(deref(startedRaw))
		}
		completedRaw := cell(csvimport.FieldCompletedDate)
		completed, err := parseTimestampPtr(completedRaw)
		if err != nil {
			return imported, errDateParse(deref(completedRaw))
		}

		description := cell(csvimport.FieldDescription)
		amount := parseAmountPtr(cell(csvimport.FieldAmount))

		expense := models.Expense{
			Type:          cell(csvimport.FieldType),
			Product:       cell(csvimport.FieldProduct),
			StartedDate:   started,
			CompletedDate: completed,
			Description:   description,
			Amount:        amount,
			Fee:           parseAmountPtr(cell(csvimport.FieldFee)),
			Currency:      cell(csvimport.FieldCurrency),
			State:         cell(csvimport.FieldState),
			Category:      classifier.Classify(deref(description)),
			Username:      owner,
		}

		dup, err := s.Store.ExistsByStartEnd(started, completed)
		if err != nil {
			return imported, errStore("duplicate check failed", err)
		}
		if !dup && s.StrictDedupe {
			dup, err = s.Store.ExistsByDescriptionAmount(description, amount)
			if err != nil {
				return imported, errStore("duplicate check failed", err)
			}
		}
		if dup {
			continue
		}

		if _, err := s.Store.Save(&expense); err != nil {
			return imported, errStore("failed to save expense", err)
		}
		imported++
	}

	count, err := s.Store.Count()
	if err != nil {
		return imported, errStore("failed to count expenses", err)
	}
	if count == 0 {
		return 0, errNoRecords()
	}

	s.Log.Info().Int("imported", imported).Msg("csv import finished")
	return imported, nil
}

// List returns the owner's expenses with negative amount, ascending by start
// time. An empty slice is a valid result, distinct from an error.
func (s *ExpenseService) List(token string) ([]models.Expense, error) {
	owner, err := s.Verifier.Verify(token)
	if err != nil || owner == "" {
		return nil, errUnauthenticated()
	}

	all, err := s.Store.FindAllByStartedAsc()
	if err != nil {
		return nil, errStore("failed to list expenses", err)
	}

	result := make([]models.Expense, 0, len(all))
	for _, e := range all {
		if e.Amount.IsNegative() && e.Username != nil && *e.Username == owner {
			result = append(result, e)
		}
	}
	return result, nil
}

// listWindow selects the owner's negative expenses whose [started, completed]
// interval both lies inside and overlaps [start, end]. The compound test is
// double-constrained on purpose; it reproduces the upstream query exactly.
func (s *ExpenseService) listWindow(start, end time.Time, token string) ([]models.Expense, error) {
	owner, err := s.Verifier.Verify(token)
	if err != nil || owner == "" {
		return nil, errUnauthenticated()
	}

	all, err := s.Store.FindAll()
	if err != nil {
		return nil, errStore("failed to list expenses", err)
	}

	result := make([]models.Expense, 0)
	for _, e := range all {
		if e.StartedDate == nil || e.CompletedDate == nil {
			continue
		}
		if e.StartedDate.Before(start) || e.CompletedDate.After(end) {
			continue
		}
		if !e.StartedDate.Before(end) || !e.CompletedDate.After(start) {
			continue
		}
		if !e.Amount.IsNegative() {
			continue
		}
		if e.Username == nil || *e.Username != owner {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// ListByDateRange parses the window bounds in "yyyy-MM-dd HH:mm:ss" form and
// delegates to the window query.
func (s *ExpenseService) ListByDateRange(startStr, endStr, token string) ([]models.Expense, error) {
	start, err := time.ParseInLocation(windowLayout, strings.TrimSpace(startStr), time.UTC)
	if err != nil {
		return nil, errMalformed("invalid date format", startStr)
	}
	end, err := time.ParseInLocation(windowLayout, strings.TrimSpace(endStr), time.UTC)
	if err != nil {
		return nil, errMalformed("invalid date format", endStr)
	}
	return s.listWindow(start, end, token)
}

// ListByMonth queries the naive 1st-to-31st window of the target month; day
// 31 is clamped to the month's actual last day for short months.
func (s *ExpenseService) ListByMonth(monthStr, yearStr, token string) ([]models.Expense, error) {
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil || month < 1 || month > 12 {
		return nil, errMalformed("invalid month", monthStr)
	}
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return nil, errMalformed("invalid year", yearStr)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month), lastWindowDay(year, time.Month(month)), 23, 59, 59, 0, time.UTC)
	return s.listWindow(start, end, token)
}

// MonthlyTotalsOfYear sums the owner's expense amounts per "yyyy-MM" bucket
// of the start time, over the full year window. Positive amounts are
// skipped, not negated.
func (s *ExpenseService) MonthlyTotalsOfYear(yearStr, token string) (map[string]decimal.Decimal, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return nil, errMalformed("invalid year", yearStr)
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	expenses, err := s.listWindow(start, end, token)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if e.StartedDate == nil {
			continue
		}
		if e.Amount.IsPositive() {
			continue
		}
		key := e.StartedDate.Format("2006-01")
		totals[key] = totals[key].Add(e.Amount)
	}
	return totals, nil
}

// Delete removes a record by id.
func (s *ExpenseService) Delete(id string) error {
	deleted, err := s.Store.DeleteByID(id)
	if err != nil {
		return errStore("failed to delete expense", err)
	}
	if !deleted {
		return errNotFound()
	}
	return nil
}

// AddOne creates a single record from a manual-add request. The amount field
// must be present; everything else is optional and degrades to null or zero
// through the same parsers the CSV path uses.
func (s *ExpenseService) AddOne(fields map[string]string, token string) (*models.Expense, error) {
	if strings.TrimSpace(fields["amount"]) == "" {
		return nil, errMalformed("missing required field", "amount")
	}

	started, err := csvimport.ParseTimestamp(fields["startedDate"])
	if err != nil {
		return nil, errDateParse(fields["startedDate"])
	}
	completed, err := csvimport.ParseTimestamp(fields["completedDate"])
	if err != nil {
		return nil, errDateParse(fields["completedDate"])
	}

	description := optional(fields["description"])

	expense := &models.Expense{
		Type:          optional(fields["type"]),
		Product:       optional(fields["product"]),
		StartedDate:   started,
		CompletedDate: completed,
		Description:   description,
		Amount:        csvimport.ParseAmount(fields["amount"]),
		Fee:           csvimport.ParseAmount(fields["fee"]),
		Currency:      optional(fields["currency"]),
		State:         optional(fields["state"]),
		Category:      classifier.Classify(fields["description"]),
		Username:      s.resolveOwner(token),
	}

	if _, err := s.Store.Save(expense); err != nil {
		return nil, errStore("failed to save expense", err)
	}
	return expense, nil
}

// readLine reads up to the first newline, tolerating CRLF and a final
// unterminated line.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	return line, err
}

func parseTimestampPtr(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	return csvimport.ParseTimestamp(*raw)
}

func parseAmountPtr(raw *string) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return csvimport.ParseAmount(*raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// lastWindowDay is the naive window's 31st day clamped to the month's
// actual length.
func lastWindowDay(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
