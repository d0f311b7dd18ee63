package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/repository"
	"github.com/nurpe/contracts-service/internal/testutil"
)

type stubExcel struct {
	reports []model.BestClientsReport
}

func (s *stubExcel) Generate(report model.BestClientsReport) ([]byte, error) {
	s.reports = append(s.reports, report)
	return []byte("xlsx"), nil
}

func august() ReportInput {
	return ReportInput{
		PeriodStart: time.Date(2020, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportServiceBestClientsDefaultsLimit(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewReportService(repository.NewReportRepository(database), &stubExcel{}, testutil.Config())
	contractor := testutil.CreateProfile(t, database, model.ProfileTypeContractor, "Musician", "0")
	paidAt := time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC)
	for _, price := range []string{"100", "300", "200"} {
		client := testutil.CreateProfile(t, database, model.ProfileTypeClient, "Client", "0")
		contract := testutil.CreateContract(t, database, client, contractor, model.ContractStatusInProgress)
		testutil.CreatePaidJob(t, database, contract, price, paidAt)
	}

	report, err := svc.BestClients(context.Background(), august())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Limit)
	require.Len(t, report.Clients, 2)
	testutil.RequireAmount(t, "300", report.Clients[0].Paid)
	testutil.RequireAmount(t, "200", report.Clients[1].Paid)
}

func TestReportServiceRejectsBadInput(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewReportService(repository.NewReportRepository(database), &stubExcel{}, testutil.Config())
	ctx := context.Background()

	reversed := august()
	reversed.PeriodStart, reversed.PeriodEnd = reversed.PeriodEnd, reversed.PeriodStart
	_, err := svc.BestClients(ctx, reversed)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BestProfession(ctx, ReportInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	tooMany := august()
	tooMany.Limit = 101
	_, err = svc.BestClients(ctx, tooMany)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportServiceBestProfessionNotFound(t *testing.T) {
	database := testutil.NewDB(t)
	svc := NewReportService(repository.NewReportRepository(database), &stubExcel{}, testutil.Config())

	_, err := svc.BestProfession(context.Background(), august())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportServiceExportBestClients(t *testing.T) {
	database := testutil.NewDB(t)
	excel := &stubExcel{}
	svc := NewReportService(repository.NewReportRepository(database), excel, testutil.Config())

	result, err := svc.ExportBestClients(context.Background(), august())
	require.NoError(t, err)
	assert.Equal(t, "best-clients-20200801-20200831.xlsx", result.FileName)
	assert.Equal(t, []byte("xlsx"), result.Content)
	require.Len(t, excel.reports, 1)
	assert.Empty(t, excel.reports[0].Clients)
}
