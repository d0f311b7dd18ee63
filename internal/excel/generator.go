package excel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contracts-service/internal/model"
)

const summarySheet = "Best clients"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.BestClientsReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.BestClientsReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Best paying clients")
	set("A2", "Period start")
	set("B2", formatDate(report.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(lastDay(report.PeriodEnd)))
	set("A4", "Limit")
	set("B4", report.Limit)
	set("A5", "Total paid")
	set("B5", formatAmount(sumPaid(report.Clients)))

	tableRow := 7
	headers := []string{"Rank", "Client ID", "Full name", "Paid"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, tableRow)
		if err != nil {
			return err
		}
		set(cell, header)
	}

	for i, client := range report.Clients {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), i+1)
		set(fmt.Sprintf("B%d", row), client.ID)
		set(fmt.Sprintf("C%d", row), client.FullName)
		set(fmt.Sprintf("D%d", row), formatAmount(client.Paid))
	}

	_ = file.SetColWidth(sheet, "A", "A", 16)
	_ = file.SetColWidth(sheet, "B", "B", 20)
	_ = file.SetColWidth(sheet, "C", "C", 40)
	_ = file.SetColWidth(sheet, "D", "D", 16)
	return nil
}

func sumPaid(clients []model.ClientPayments) decimal.Decimal {
	total := decimal.Zero
	for _, client := range clients {
		total = total.Add(client.Paid)
	}
	return total
}

// lastDay converts an exclusive period end into the last covered instant.
func lastDay(endExclusive time.Time) time.Time {
	if endExclusive.IsZero() {
		return endExclusive
	}
	return endExclusive.Add(-time.Nanosecond)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}
