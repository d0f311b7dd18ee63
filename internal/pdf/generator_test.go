package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-service/internal/model"
)

func TestGenerateRendersPaidJob(t *testing.T) {
	paid := true
	paidAt := time.Date(2020, 8, 15, 19, 11, 26, 0, time.UTC)
	doc := model.JobDocument{
		Job: model.Job{
			ID:          7,
			Description: "work",
			Price:       decimal.RequireFromString("200"),
			Paid:        &paid,
			PaymentDate: &paidAt,
		},
		Contract:   model.Contract{ID: 3, Terms: "bla bla bla"},
		Client:     model.Profile{ID: 1, FirstName: "Harry", LastName: "Potter", Profession: "Wizard"},
		Contractor: model.Profile{ID: 5, FirstName: "John", LastName: "Lenon", Profession: "Musician"},
	}

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestGenerateRejectsUnpaidJob(t *testing.T) {
	_, err := NewGenerator().Generate(model.JobDocument{Job: model.Job{ID: 1}})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short ", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
