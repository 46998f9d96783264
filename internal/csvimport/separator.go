package csvimport

import "strings"

// DetectSeparator picks the field delimiter for a whole file from its raw
// header line. The candidate with the strictly highest occurrence count wins;
// ties and all-zero counts fall back to comma. Detection runs once per file,
// never per row.
func DetectSeparator(headerLine string) rune {
	comma := strings.Count(headerLine, ",")
	semi := strings.Count(headerLine, ";")
	tab := strings.Count(headerLine, "\t")

	switch {
	case semi > comma && semi > tab:
		return ';'
	case tab > comma && tab > semi:
		return '\t'
	default:
		return ','
	}
}
