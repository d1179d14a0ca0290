package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"dentsync/pkg/domain"
)

var financialHeader = []string{"Date", "Type", "Category", "Description", "Amount (INR)"}

// FinancialsCSV renders the ledger as CSV with a fixed header row. Amounts
// are formatted with two decimals; quoting is handled by the csv writer.
func FinancialsCSV(transactions []domain.FinancialTransaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(financialHeader); err != nil {
		return nil, err
	}
	for _, t := range transactions {
		row := []string{t.Date, string(t.Type), t.Category, t.Description, fmt.Sprintf("%.2f", t.Amount)}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
