package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/hanwool/gagyebu/internal/model"
	"github.com/hanwool/gagyebu/internal/service"
)

// ChartGenerator renders summary breakdowns as PNG images.
type ChartGenerator struct{}

func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// CategoryPie renders the category distribution of one kind as a pie chart.
// Returns nil bytes when the summary has no data for that kind.
func (g *ChartGenerator) CategoryPie(summary *service.Summary, kind model.Kind) ([]byte, error) {
	byCategory := summary.ExpenseByCategory
	if kind == model.KindIncome {
		byCategory = summary.IncomeByCategory
	}
	if len(byCategory) == 0 {
		return nil, nil
	}

	values := make([]chart.Value, 0, len(byCategory))
	for category, amount := range byCategory {
		v := amount.InexactFloat64()
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", category, amount.StringFixed(0)),
			Value: v,
		})
	}
	if len(values) == 0 {
		return nil, nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render category pie: %w", err)
	}
	return buffer.Bytes(), nil
}

// BalanceBar renders income, expense and net balance side by side.
func (g *ChartGenerator) BalanceBar(summary *service.Summary) ([]byte, error) {
	graph := chart.BarChart{
		Width:    600,
		Height:   400,
		BarWidth: 120,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   40,
				Right:  40,
				Bottom: 40,
			},
			FillColor: chart.ColorWhite,
		},
		Bars: []chart.Value{
			{Label: "Income", Value: summary.TotalIncome.InexactFloat64()},
			{Label: "Expense", Value: summary.TotalExpense.InexactFloat64()},
			{Label: "Balance", Value: summary.Balance.InexactFloat64()},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render balance chart: %w", err)
	}
	return buffer.Bytes(), nil
}
