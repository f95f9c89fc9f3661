package charts

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/service"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func testSummary() *service.Summary {
	return &service.Summary{
		Currency:     "KRW",
		TotalIncome:  decimal.NewFromInt(3000000),
		TotalExpense: decimal.NewFromInt(88500),
		Balance:      decimal.NewFromInt(2911500),
		ExpenseByCategory: map[string]decimal.Decimal{
			"숙박": decimal.NewFromInt(75000),
			"식비": decimal.NewFromInt(13500),
		},
		IncomeByCategory: map[string]decimal.Decimal{
			"급여": decimal.NewFromInt(3000000),
		},
	}
}

func TestCategoryPie(t *testing.T) {
	png, err := NewChartGenerator().CategoryPie(testSummary(), model.KindExpense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Error("expected PNG output")
	}
}

func TestCategoryPieNoData(t *testing.T) {
	summary := testSummary()
	summary.IncomeByCategory = nil
	png, err := NewChartGenerator().CategoryPie(summary, model.KindIncome)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if png != nil {
		t.Error("expected nil output for an empty breakdown")
	}
}

func TestBalanceBar(t *testing.T) {
	png, err := NewChartGenerator().BalanceBar(testSummary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngHeader) {
		t.Error("expected PNG output")
	}
}
