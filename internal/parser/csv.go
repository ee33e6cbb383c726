package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/file-processor/backend/internal/models"
)

// csvColumns is the exact column layout of a sales record.
const csvColumns = 6 // date, product, category, price, quantity, discount

// CSVSalesParser handles CSV sales records.
// Format: header line, then "date,product,category,price,quantity,discount".
type CSVSalesParser struct{}

func NewCSVSalesParser() *CSVSalesParser {
	return &CSVSalesParser{}
}

func (p *CSVSalesParser) Name() string {
	return "csv_sales"
}

func (p *CSVSalesParser) Format() models.FileFormat {
	return models.FormatCSV
}

func (p *CSVSalesParser) Parse(data []byte) models.ProcessingResult {
	res := models.ProcessingResult{Format: models.FormatCSV}
	metrics := &models.CSVMetrics{}
	lineErrors := make([]models.LineError, 0)
	products := make(map[string]struct{})
	totalSales := 0.0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, maxScannerBuffer), maxScannerBuffer)
	seenHeader := false
	dataLine := 0
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !seenHeader {
			seenHeader = true
			continue
		}
		dataLine++
		metrics.TotalLines++

		if reason, ok := validateSalesLine(line); !ok {
			metrics.InvalidRecords++
			lineErrors = append(lineErrors, models.LineError{
				Line:    dataLine,
				Content: Truncate(line, 50),
				Reason:  reason,
			})
			continue
		}

		fields := strings.Split(line, ",")
		price, _ := leadingFloat(fields[3])
		quantity, _ := leadingInt(fields[4])
		discount, _ := leadingFloat(fields[5])

		totalSales += price * float64(quantity) * (1 - discount/100)
		products[strings.TrimSpace(fields[1])] = struct{}{}
		metrics.ValidRecords++
	}

	metrics.TotalSales = roundCurrency(totalSales)
	metrics.UniqueProducts = len(products)
	res.CSV = metrics
	res.Errors = lineErrors

	if err := scanner.Err(); err != nil {
		res.Outcome = models.OutcomeFailure
		res.Reason = fmt.Sprintf("scan error: %v", err)
		return res
	}

	switch {
	case metrics.TotalLines == 0:
		res.Outcome = models.OutcomeFailure
		res.Reason = "no data"
	case metrics.ValidRecords == 0:
		res.Outcome = models.OutcomeFailure
		res.Reason = "no valid records"
	case metrics.InvalidRecords > 0:
		res.Outcome = models.OutcomePartial
	default:
		res.Outcome = models.OutcomeSuccess
	}
	return res
}

// validateSalesLine checks one data line against the sales record rules and
// returns the rejection reason when the line is invalid.
func validateSalesLine(line string) (string, bool) {
	fields := strings.Split(line, ",")
	if len(fields) != csvColumns {
		return fmt.Sprintf("expected %d columns, got %d", csvColumns, len(fields)), false
	}

	date := strings.TrimSpace(fields[0])
	if date == "" || len(date) < 8 {
		return "invalid date", false
	}
	if strings.TrimSpace(fields[1]) == "" {
		return "empty product", false
	}
	if strings.TrimSpace(fields[2]) == "" {
		return "empty category", false
	}

	price, ok := leadingFloat(fields[3])
	if !ok || price <= 0 {
		return "invalid price", false
	}
	quantity, ok := leadingInt(fields[4])
	if !ok || quantity <= 0 {
		return "invalid quantity", false
	}
	discount, ok := leadingFloat(fields[5])
	if !ok || discount < 0 || discount > 100 {
		return "invalid discount", false
	}
	return "", true
}
