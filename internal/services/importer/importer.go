// Package importer parses exported bank statements into fee line items
package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownFormat = errors.New("unknown CSV format")
	ErrEmptyFile     = errors.New("CSV file is empty")
)

// Fee categories
const (
	CategoryMaintenance = "maintenance"
	CategoryOverdraft   = "overdraft"
	CategoryWire        = "wire"
	CategoryATM         = "atm"
	CategoryOther       = "other"
)

// FeeLine is a single fee detected on a statement
type FeeLine struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// ParseResult contains all fees found on a statement
type ParseResult struct {
	Lines      []FeeLine                  `json:"lines"`
	TotalFees  decimal.Decimal            `json:"total_fees"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	Skipped    int                        `json:"skipped"`
}

// Service parses bank statement CSV exports. Expected columns are date,
// description and amount; header casing, extra columns and column order
// vary by bank and are tolerated.
type Service struct{}

// NewService creates a new import service
func NewService() *Service {
	return &Service{}
}

// Parse reads a statement CSV and extracts fee lines. Rows that cannot
// be parsed are counted and skipped rather than failing the import.
func (s *Service) Parse(reader io.Reader) (*ParseResult, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1 // banks disagree on column counts
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headerIdx, cols := findHeader(records)
	if headerIdx < 0 {
		return nil, ErrUnknownFormat
	}

	result := &ParseResult{
		TotalFees:  decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}

	for _, row := range records[headerIdx+1:] {
		line, ok := parseRow(row, cols)
		if !ok {
			result.Skipped++
			continue
		}
		if line == nil {
			continue // not a fee, nothing to report
		}
		result.Lines = append(result.Lines, *line)
		result.TotalFees = result.TotalFees.Add(line.Amount)

		current, ok := result.ByCategory[line.Category]
		if !ok {
			current = decimal.Zero
		}
		result.ByCategory[line.Category] = current.Add(line.Amount)
	}

	return result, nil
}

// columns maps the indexes of the fields we care about
type columns struct {
	date        int
	description int
	amount      int
}

// findHeader locates the header row; statements often lead with account
// metadata before the actual table starts.
func findHeader(records [][]string) (int, columns) {
	for i, row := range records {
		cols := columns{date: -1, description: -1, amount: -1}
		for j, cell := range row {
			switch {
			case containsAny(cell, "date", "posted"):
				if cols.date < 0 {
					cols.date = j
				}
			case containsAny(cell, "description", "memo", "detail", "transaction"):
				if cols.description < 0 {
					cols.description = j
				}
			case containsAny(cell, "amount", "debit", "charge"):
				if cols.amount < 0 {
					cols.amount = j
				}
			}
		}
		if cols.description >= 0 && cols.amount >= 0 {
			return i, cols
		}
	}
	return -1, columns{}
}

func containsAny(cell string, keywords ...string) bool {
	lower := strings.ToLower(strings.TrimSpace(cell))
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// parseRow returns (line, true) for a fee row, (nil, true) for a valid
// non-fee row, and (nil, false) for a row that could not be parsed.
func parseRow(row []string, cols columns) (*FeeLine, bool) {
	if cols.description >= len(row) || cols.amount >= len(row) {
		return nil, false
	}

	description := strings.TrimSpace(row[cols.description])
	if description == "" {
		return nil, false
	}

	category, isFee := classify(description)
	if !isFee {
		return nil, true
	}

	amount, err := parseAmount(row[cols.amount])
	if err != nil {
		return nil, false
	}
	if amount.IsZero() {
		return nil, true
	}

	// Banks disagree on debit sign conventions; a fee row is a fee
	// whether exported as 12.50, -12.50 or (12.50).
	line := &FeeLine{
		Description: description,
		Category:    category,
		Amount:      amount.Abs(),
	}
	if cols.date >= 0 && cols.date < len(row) {
		line.Date = parseDate(row[cols.date])
	}
	return line, true
}

// feeKeywords maps description keywords to fee categories; order matters,
// the first match wins.
var feeKeywords = []struct {
	keyword  string
	category string
}{
	{"maintenance", CategoryMaintenance},
	{"monthly service", CategoryMaintenance},
	{"account fee", CategoryMaintenance},
	{"overdraft", CategoryOverdraft},
	{"nsf", CategoryOverdraft},
	{"insufficient funds", CategoryOverdraft},
	{"wire", CategoryWire},
	{"atm", CategoryATM},
	{"service charge", CategoryOther},
	{"analysis charge", CategoryOther},
	{"fee", CategoryOther},
}

func classify(description string) (string, bool) {
	// Keywords match whole words only; "nsf" must not hit the middle of
	// "transfer", so the description is normalized to space-separated
	// lowercase words before matching.
	words := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	normalized := " " + strings.Join(words, " ") + " "
	for _, k := range feeKeywords {
		if strings.Contains(normalized, " "+k.keyword+" ") {
			return k.category, true
		}
	}
	return "", false
}

// parseAmount handles "$1,234.56", "(12.50)" for negatives, and plain
// numbers. Statement debits may appear as negatives; callers get the
// absolute fee as charged, with sign preserved only to drop credits.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
}

func parseDate(raw string) time.Time {
	cleaned := strings.TrimSpace(raw)
	for _, format := range dateFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t
		}
	}
	return time.Time{}
}
