package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

const sampleStatement = `Account: ****1234
Statement Period: 08/01/2025 - 08/31/2025

Date,Description,Amount
2025-08-01,MONTHLY MAINTENANCE FEE,-15.00
2025-08-03,CHECK DEPOSIT,"2,340.00"
2025-08-07,OVERDRAFT FEE,(35.00)
2025-08-12,WIRE TRANSFER FEE,$30.00
2025-08-15,PAYROLL RUN,-8200.00
2025-08-18,TRANSFER TO SAVINGS,-500.00
2025-08-20,NON-CHASE ATM FEE,3.50
2025-08-28,SERVICE CHARGE,12.00
`

func TestParse_SampleStatement(t *testing.T) {
	svc := NewService()

	res, err := svc.Parse(strings.NewReader(sampleStatement))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(res.Lines) != 5 {
		t.Fatalf("got %d fee lines, want 5: %+v", len(res.Lines), res.Lines)
	}
	if !res.TotalFees.Equal(decimal.NewFromFloat(95.50)) {
		t.Errorf("TotalFees = %s, want 95.5", res.TotalFees)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}

	wantCategories := map[string]float64{
		CategoryMaintenance: 15.00,
		CategoryOverdraft:   35.00,
		CategoryWire:        30.00,
		CategoryATM:         3.50,
		CategoryOther:       12.00,
	}
	for category, want := range wantCategories {
		got, ok := res.ByCategory[category]
		if !ok {
			t.Errorf("missing category %q", category)
			continue
		}
		if !got.Equal(decimal.NewFromFloat(want)) {
			t.Errorf("ByCategory[%s] = %s, want %v", category, got, want)
		}
	}
}

func TestParse_ClassifiesDescriptions(t *testing.T) {
	tests := []struct {
		description string
		category    string
		isFee       bool
	}{
		{"MONTHLY MAINTENANCE FEE", CategoryMaintenance, true},
		{"Monthly Service Charge", CategoryMaintenance, true},
		{"OVERDRAFT ITEM FEE", CategoryOverdraft, true},
		{"NSF RETURNED ITEM", CategoryOverdraft, true},
		{"INCOMING WIRE FEE", CategoryWire, true},
		{"WIRE TRANSFER FEE", CategoryWire, true},
		{"ATM WITHDRAWAL FEE", CategoryATM, true},
		{"ACCOUNT ANALYSIS CHARGE", CategoryOther, true},
		{"PAPER STATEMENT FEE", CategoryOther, true},
		{"CHECK DEPOSIT", "", false},
		{"ACH PAYMENT VENDOR", "", false},
		// "nsf" must not match inside "transfer"
		{"TRANSFER TO SAVINGS", "", false},
		{"ONLINE TRANSFER FROM CHECKING", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			category, isFee := classify(tt.description)
			if isFee != tt.isFee {
				t.Fatalf("classify(%q) fee = %v, want %v", tt.description, isFee, tt.isFee)
			}
			if category != tt.category {
				t.Errorf("classify(%q) = %q, want %q", tt.description, category, tt.category)
			}
		})
	}
}

func TestParse_AmountFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12.50", 12.50},
		{"-12.50", -12.50},
		{"(12.50)", -12.50},
		{"$1,234.56", 1234.56},
		{" $35.00 ", 35.00},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseAmount(tt.raw)
			if err != nil {
				t.Fatalf("parseAmount(%q): %v", tt.raw, err)
			}
			if !got.Equal(decimal.NewFromFloat(tt.want)) {
				t.Errorf("parseAmount(%q) = %s, want %v", tt.raw, got, tt.want)
			}
		})
	}

	if _, err := parseAmount("not a number"); err == nil {
		t.Error("junk amounts should error")
	}
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	svc := NewService()
	statement := "Date,Description,Amount\n" +
		"2025-08-01,MAINTENANCE FEE,not-a-number\n" +
		"2025-08-02,OVERDRAFT FEE,35.00\n"

	res, err := svc.Parse(strings.NewReader(statement))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}
	if len(res.Lines) != 1 {
		t.Errorf("got %d lines, want 1", len(res.Lines))
	}
}

func TestParse_EmptyAndUnknown(t *testing.T) {
	svc := NewService()

	if _, err := svc.Parse(strings.NewReader("")); err != ErrEmptyFile {
		t.Errorf("empty input = %v, want ErrEmptyFile", err)
	}

	garbage := "just,some,cells\nwith,no,header\n"
	if _, err := svc.Parse(strings.NewReader(garbage)); err != ErrUnknownFormat {
		t.Errorf("headerless input = %v, want ErrUnknownFormat", err)
	}
}

func TestParse_DateParsing(t *testing.T) {
	svc := NewService()
	statement := "Posted Date,Description,Amount\n" +
		"08/07/2025,OVERDRAFT FEE,35.00\n"

	res, err := svc.Parse(strings.NewReader(statement))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(res.Lines))
	}
	d := res.Lines[0].Date
	if d.Year() != 2025 || d.Month() != 8 || d.Day() != 7 {
		t.Errorf("Date = %v, want 2025-08-07", d)
	}
}
