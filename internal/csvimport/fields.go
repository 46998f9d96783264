// Package csvimport turns loosely structured bank export files into typed
// values: it detects the field delimiter, maps arbitrary header wording to
// canonical field names, and parses timestamps and money amounts.
package csvimport

import "strings"

// Canonical field names the importer understands, independent of how the
// source file labels its columns.
const (
	FieldType          = "type"
	FieldProduct       = "product"
	FieldStartedDate   = "startedDate"
	FieldCompletedDate = "completedDate"
	FieldDescription   = "description"
	FieldAmount        = "amount"
	FieldFee           = "fee"
	FieldCurrency      = "currency"
	FieldState         = "state"
)

type fieldSynonyms struct {
	Field    string
	Synonyms []string
}

// synonymTable maps each canonical field to its accepted header aliases.
// Declaration order matters: resolution commits a field to the first header
// cell matching any alias. "Data" appears under both date fields, so a bare
// Italian "Data" column resolves to both; that ambiguity is inherent to
// substring matching and is left as is.
var synonymTable = []fieldSynonyms{
	{FieldType, []string{"Type", "Tipo"}},
	{FieldProduct, []string{"Product", "Prodotto", "item", "description_item"}},
	{FieldStartedDate, []string{"started", "started_date", "starteddate", "Data di inizio", "start_date", "Data", "Date"}},
	{FieldCompletedDate, []string{"completed", "completed_date", "Data di completamento", "data_fine", "end_date", "Data"}},
	{FieldDescription, []string{"Description", "Descrizione", "Operazione"}},
	{FieldAmount, []string{"Amount", "Importo", "value", "valore", "totale"}},
	{FieldFee, []string{"Fee", "tax", "commission"}},
	{FieldCurrency, []string{"Currency", "Valuta", "moneta"}},
	{FieldState, []string{"State", "Stato", "status", "Contabilizzazione"}},
}

// ResolveHeader maps canonical field names to column indexes. Header cells
// are normalized (trimmed, lowercased, quotes stripped) and matched against
// each field's aliases by equality or substring containment. The first
// matching cell wins per field, scanning left to right; fields without a
// match are simply absent from the result.
func ResolveHeader(header []string) map[string]int {
	resolved := make(map[string]int)
	for i, cell := range header {
		h := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), `"`, "")
		for _, fs := range synonymTable {
			if _, ok := resolved[fs.Field]; ok {
				continue
			}
			for _, syn := range fs.Synonyms {
				s := strings.ToLower(syn)
				if h == s || strings.Contains(h, s) {
					resolved[fs.Field] = i
					break
				}
			}
		}
	}
	return resolved
}

// CellAt returns the trimmed cell value for a resolved column index, or nil
// when the field is unresolved, the row is short, or the cell is blank.
func CellAt(row []string, idx int, ok bool) *string {
	if !ok || idx < 0 || idx >= len(row) {
		return nil
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return nil
	}
	return &v
}
