package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/repository"
)

type ExcelGenerator interface {
	Generate(report model.BestClientsReport) ([]byte, error)
}

type ReportService struct {
	repo         *repository.ReportRepository
	excel        ExcelGenerator
	defaultLimit int
}

// ReportInput bounds a report to [PeriodStart, PeriodEnd).
type ReportInput struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Limit       int
}

const maxBestClientsLimit = 100

func NewReportService(repo *repository.ReportRepository, excel ExcelGenerator, cfg *config.Config) *ReportService {
	return &ReportService{
		repo:         repo,
		excel:        excel,
		defaultLimit: cfg.Reports.BestClientsLimit,
	}
}

func (s *ReportService) BestProfession(ctx context.Context, input ReportInput) (*model.ProfessionEarnings, error) {
	if err := validatePeriod(input); err != nil {
		return nil, err
	}
	best, err := s.repo.BestProfession(ctx, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no paid jobs in period", ErrNotFound)
		}
		return nil, err
	}
	return best, nil
}

func (s *ReportService) BestClients(ctx context.Context, input ReportInput) (*model.BestClientsReport, error) {
	if err := validatePeriod(input); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	if limit < 0 || limit > maxBestClientsLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, maxBestClientsLimit)
	}

	clients, err := s.repo.BestClients(ctx, input.PeriodStart, input.PeriodEnd, limit)
	if err != nil {
		return nil, err
	}
	return &model.BestClientsReport{
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		Limit:       limit,
		Clients:     clients,
	}, nil
}

func (s *ReportService) ExportBestClients(ctx context.Context, input ReportInput) (*FileResult, error) {
	report, err := s.BestClients(ctx, input)
	if err != nil {
		return nil, err
	}

	content, err := s.excel.Generate(*report)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: buildFileName("best-clients", report.PeriodStart, report.PeriodEnd),
		Content:  content,
	}, nil
}

func validatePeriod(input ReportInput) error {
	if input.PeriodStart.IsZero() || input.PeriodEnd.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !input.PeriodStart.Before(input.PeriodEnd) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	return nil
}

// buildFileName names the file after the inclusive last day of the period.
func buildFileName(prefix string, start, endExclusive time.Time) string {
	lastDay := endExclusive.Add(-time.Nanosecond)
	period := fmt.Sprintf("%s-%s", start.Format("20060102"), lastDay.Format("20060102"))
	return fmt.Sprintf("%s-%s.xlsx", prefix, period)
}
