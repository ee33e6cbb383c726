package parser

import (
	"math"
	"strings"
	"testing"

	"github.com/file-processor/backend/internal/models"
)

func TestCSVSalesParserValidAndInvalid(t *testing.T) {
	p := NewCSVSalesParser()
	data := []byte("date,product,category,price,quantity,discount\n" +
		"2024-01-01,Widget,Tools,10.00,2,10\n" +
		"2024-01-01,,Tools,10.00,2,10\n")

	res := p.Parse(data)
	if res.Outcome != models.OutcomePartial {
		t.Fatalf("Expected partial outcome, got %s", res.Outcome)
	}
	m := res.CSV
	if m.ValidRecords != 1 {
		t.Errorf("Expected 1 valid record, got %d", m.ValidRecords)
	}
	if m.InvalidRecords != 1 {
		t.Errorf("Expected 1 invalid record, got %d", m.InvalidRecords)
	}
	if m.TotalLines != 2 {
		t.Errorf("Expected 2 total lines, got %d", m.TotalLines)
	}
	// 10.00 * 2 * (1 - 0.10) = 18.00
	if math.Abs(m.TotalSales-18.00) > 1e-9 {
		t.Errorf("Expected total sales 18.00, got %v", m.TotalSales)
	}
	if m.UniqueProducts != 1 {
		t.Errorf("Expected 1 unique product, got %d", m.UniqueProducts)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Expected 1 line error, got %d", len(res.Errors))
	}
	if res.Errors[0].Line != 2 {
		t.Errorf("Expected error on data line 2, got %d", res.Errors[0].Line)
	}
	if res.Errors[0].Reason != "empty product" {
		t.Errorf("Expected reason 'empty product', got %q", res.Errors[0].Reason)
	}
}

func TestCSVSalesParserLenientNumbers(t *testing.T) {
	p := NewCSVSalesParser()
	data := []byte("date,product,category,price,quantity,discount\n" +
		"2024-01-01,Widget,Tools,19.99USD,3units,0\n")

	res := p.Parse(data)
	if res.Outcome != models.OutcomeSuccess {
		t.Fatalf("Expected success, got %s (%s)", res.Outcome, res.Reason)
	}
	// 19.99 * 3 = 59.97
	if math.Abs(res.CSV.TotalSales-59.97) > 1e-9 {
		t.Errorf("Expected total sales 59.97, got %v", res.CSV.TotalSales)
	}
}

func TestCSVSalesParserRejections(t *testing.T) {
	cases := []struct {
		name   string
		line   string
		reason string
	}{
		{"wrong column count", "2024-01-01,Widget,Tools,10.00,2", "expected 6 columns, got 5"},
		{"short date", "2024,Widget,Tools,10.00,2,0", "invalid date"},
		{"empty category", "2024-01-01,Widget,,10.00,2,0", "empty category"},
		{"negative price", "2024-01-01,Widget,Tools,-5.00,2,0", "invalid price"},
		{"zero price", "2024-01-01,Widget,Tools,0,2,0", "invalid price"},
		{"non-numeric price", "2024-01-01,Widget,Tools,free,2,0", "invalid price"},
		{"zero quantity", "2024-01-01,Widget,Tools,10.00,0,0", "invalid quantity"},
		{"discount above 100", "2024-01-01,Widget,Tools,10.00,2,150", "invalid discount"},
		{"negative discount", "2024-01-01,Widget,Tools,10.00,2,-1", "invalid discount"},
	}

	p := NewCSVSalesParser()
	for _, tc := range cases {
		data := []byte("date,product,category,price,quantity,discount\n" + tc.line + "\n")
		res := p.Parse(data)
		if res.CSV.InvalidRecords != 1 {
			t.Errorf("%s: expected line rejected, got %d invalid", tc.name, res.CSV.InvalidRecords)
			continue
		}
		if res.Errors[0].Reason != tc.reason {
			t.Errorf("%s: expected reason %q, got %q", tc.name, tc.reason, res.Errors[0].Reason)
		}
	}
}

func TestCSVSalesParserNoData(t *testing.T) {
	p := NewCSVSalesParser()

	res := p.Parse([]byte("date,product,category,price,quantity,discount\n"))
	if res.Outcome != models.OutcomeFailure || res.Reason != "no data" {
		t.Errorf("Expected failure 'no data', got %s %q", res.Outcome, res.Reason)
	}

	res = p.Parse([]byte(""))
	if res.Outcome != models.OutcomeFailure || res.Reason != "no data" {
		t.Errorf("Empty file: expected failure 'no data', got %s %q", res.Outcome, res.Reason)
	}
}

func TestCSVSalesParserAllInvalid(t *testing.T) {
	p := NewCSVSalesParser()
	data := []byte("date,product,category,price,quantity,discount\n" +
		"garbage\n" +
		"more,garbage\n")

	res := p.Parse(data)
	if res.Outcome != models.OutcomeFailure {
		t.Errorf("Expected failure when every record is invalid, got %s", res.Outcome)
	}
	if len(res.Errors) != 2 {
		t.Errorf("Expected 2 line errors, got %d", len(res.Errors))
	}
	// Line errors must be in ascending line order.
	if res.Errors[0].Line != 1 || res.Errors[1].Line != 2 {
		t.Errorf("Expected ascending line numbers, got %d then %d", res.Errors[0].Line, res.Errors[1].Line)
	}
}

func TestCSVSalesParserSkipsBlankLines(t *testing.T) {
	p := NewCSVSalesParser()
	data := []byte("date,product,category,price,quantity,discount\n\n" +
		"2024-01-01,Widget,Tools,10.00,1,0\n\n")

	res := p.Parse(data)
	if res.CSV.TotalLines != 1 {
		t.Errorf("Blank lines must not be counted, got %d total", res.CSV.TotalLines)
	}
	if res.Outcome != models.OutcomeSuccess {
		t.Errorf("Expected success, got %s", res.Outcome)
	}
}

func TestRoundCurrency(t *testing.T) {
	// Documented behavior: half away from zero. 2.375 is exactly
	// representable, so the half case is deterministic.
	if got := roundCurrency(2.375); got != 2.38 {
		t.Errorf("roundCurrency(2.375) = %v, want 2.38", got)
	}
	if got := roundCurrency(-2.375); got != -2.38 {
		t.Errorf("roundCurrency(-2.375) = %v, want -2.38", got)
	}
	if got := roundCurrency(18.0); got != 18.0 {
		t.Errorf("roundCurrency(18.0) = %v, want 18.0", got)
	}
}

func TestCSVSalesParserLongLines(t *testing.T) {
	p := NewCSVSalesParser()
	// A record with an oversized field must be parsed, not silently
	// truncate the rest of the file.
	longProduct := strings.Repeat("x", 70*1024)
	data := "date,product,category,price,quantity,discount\n" +
		"2024-01-15," + longProduct + ",Tools,10.00,1,0\n" +
		"2024-01-16,Hammer,Tools,8.00,1,0\n"

	res := p.Parse([]byte(data))
	if res.Outcome != models.OutcomeSuccess {
		t.Fatalf("Expected success outcome, got %s (%s)", res.Outcome, res.Reason)
	}
	m := res.CSV
	if m.TotalLines != 2 || m.ValidRecords != 2 {
		t.Errorf("Expected 2 total / 2 valid, got %d / %d", m.TotalLines, m.ValidRecords)
	}
	if m.TotalSales != 18.00 {
		t.Errorf("Expected total sales 18.00, got %.2f", m.TotalSales)
	}
}
