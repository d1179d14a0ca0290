package reports

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"dentsync/pkg/domain"
)

func TestFinancialsCSVRendersHeaderAndRows(t *testing.T) {
	transactions := []domain.FinancialTransaction{
		{Date: "2025-03-01", Type: domain.TransactionIncome, Category: "Patient Payment", Description: `Payment from Asha Verma for "Root Canal"`, Amount: 4500},
		{Date: "2025-03-02", Type: domain.TransactionExpense, Category: "Lab", Description: "Crown, zirconia", Amount: 1200.5},
	}
	data, err := FinancialsCSV(transactions)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []string{"Date", "Type", "Category", "Description", "Amount (INR)"}) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][3] != `Payment from Asha Verma for "Root Canal"` {
		t.Fatalf("quoted description mangled: %q", rows[1][3])
	}
	if rows[2][3] != "Crown, zirconia" {
		t.Fatalf("comma description mangled: %q", rows[2][3])
	}
	if rows[1][4] != "4500.00" || rows[2][4] != "1200.50" {
		t.Fatalf("amounts must carry two decimals: %v %v", rows[1][4], rows[2][4])
	}
}

func TestFinancialsCSVEmptyLedger(t *testing.T) {
	data, err := FinancialsCSV(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil || len(rows) != 1 {
		t.Fatalf("empty ledger must still emit the header, got %v err %v", rows, err)
	}
}
