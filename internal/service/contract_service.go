package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/repository"
)

type ReceiptGenerator interface {
	Generate(doc model.JobDocument) ([]byte, error)
}

type ContractService struct {
	contracts *repository.ContractRepository
	ledger    *repository.LedgerRepository
	receipts  ReceiptGenerator
}

type FileResult struct {
	FileName string
	Content  []byte
}

const maxLedgerEntries = 200

func NewContractService(contracts *repository.ContractRepository, ledger *repository.LedgerRepository, receipts ReceiptGenerator) *ContractService {
	return &ContractService{
		contracts: contracts,
		ledger:    ledger,
		receipts:  receipts,
	}
}

func (s *ContractService) GetContract(ctx context.Context, id uint, profile model.Profile) (*model.Contract, error) {
	contract, err := s.contracts.GetForProfile(ctx, id, profile.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) ListContracts(ctx context.Context, profile model.Profile) ([]model.Contract, error) {
	return s.contracts.ListOpenForProfile(ctx, profile.ID)
}

func (s *ContractService) ListUnpaidJobs(ctx context.Context, profile model.Profile) ([]model.Job, error) {
	return s.contracts.ListUnpaidJobs(ctx, profile.ID)
}

func (s *ContractService) ListLedgerEntries(ctx context.Context, profile model.Profile, limit int) ([]model.LedgerEntry, error) {
	if limit <= 0 || limit > maxLedgerEntries {
		limit = maxLedgerEntries
	}
	return s.ledger.ListEntries(ctx, profile.ID, limit)
}

// JobReceipt renders a PDF receipt for a paid job. Jobs of contracts the
// profile is not party to are reported as missing.
func (s *ContractService) JobReceipt(ctx context.Context, jobID uint, profile model.Profile) (*FileResult, error) {
	doc, err := s.contracts.GetJobDocument(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if !doc.Contract.HasParty(profile.ID) {
		return nil, ErrJobNotFound
	}
	if !doc.Job.IsPaid() {
		return nil, ErrJobNotPaid
	}

	content, err := s.receipts.Generate(*doc)
	if err != nil {
		return nil, err
	}
	return &FileResult{
		FileName: fmt.Sprintf("receipt-job-%d.pdf", doc.Job.ID),
		Content:  content,
	}, nil
}
