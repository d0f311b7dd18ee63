package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contracts-service/internal/model"
)

func TestGenerateWritesSummaryAndRows(t *testing.T) {
	report := model.BestClientsReport{
		PeriodStart: time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
		Limit:       2,
		Clients: []model.ClientPayments{
			{ID: 4, FullName: "Ash Kethcum", Paid: decimal.RequireFromString("2020")},
			{ID: 2, FullName: "Mr Robot", Paid: decimal.RequireFromString("442.5")},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	cell := func(name string) string {
		value, err := file.GetCellValue(summarySheet, name)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "2020-08-01", cell("B2"))
	assert.Equal(t, "2020-08-31", cell("B3"))
	assert.Equal(t, "2", cell("B4"))
	assert.Equal(t, "2462.50", cell("B5"))
	assert.Equal(t, "Full name", cell("C7"))
	assert.Equal(t, "Ash Kethcum", cell("C8"))
	assert.Equal(t, "2020.00", cell("D8"))
	assert.Equal(t, "4", cell("B8"))
	assert.Equal(t, "Mr Robot", cell("C9"))
	assert.Equal(t, "442.50", cell("D9"))
}

func TestGenerateWithoutClients(t *testing.T) {
	content, err := NewGenerator().Generate(model.BestClientsReport{Limit: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
