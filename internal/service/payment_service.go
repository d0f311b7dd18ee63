package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/contracts-service/internal/config"
	"github.com/nurpe/contracts-service/internal/model"
	"github.com/nurpe/contracts-service/internal/repository"
)

// LedgerStore runs fn inside one store transaction.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx *repository.LedgerRepository) error) error
}

// PaymentService moves money between profiles. Every operation runs its
// read-check-write sequence inside one store transaction.
type PaymentService struct {
	ledger   LedgerStore
	capRatio decimal.Decimal
	log      zerolog.Logger
	now      func() time.Time
}

func NewPaymentService(ledger LedgerStore, cfg *config.Config, log zerolog.Logger) *PaymentService {
	return &PaymentService{
		ledger:   ledger,
		capRatio: cfg.Payments.DepositCapRatio,
		log:      log.With().Str("component", "payments").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PayJob debits the contract's client and credits its contractor by the job
// price, and marks the job paid. A paid job is never charged again.
func (s *PaymentService) PayJob(ctx context.Context, jobID uint, payer model.Profile) (*model.PaymentReceipt, error) {
	var receipt *model.PaymentReceipt
	err := s.transact(ctx, func(tx *repository.LedgerRepository) error {
		var err error
		receipt, err = s.payJob(ctx, tx, jobID, payer.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("job_id", receipt.JobID).
		Uint("client_id", receipt.ClientID).
		Uint("contractor_id", receipt.ContractorID).
		Str("amount", receipt.Amount.String()).
		Msg("job paid")
	return receipt, nil
}

func (s *PaymentService) payJob(ctx context.Context, tx *repository.LedgerRepository, jobID, payerID uint) (*model.PaymentReceipt, error) {
	job, err := tx.LockJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	contract := job.Contract

	if contract.ClientID != payerID {
		return nil, ErrUnauthorized
	}
	if job.IsPaid() {
		return nil, ErrAlreadyPaid
	}
	if contract.Status != model.ContractStatusInProgress {
		return nil, ErrContractNotActive
	}

	profiles, err := tx.LockProfiles(ctx, contract.ClientID, contract.ContractorID)
	if err != nil {
		return nil, err
	}
	client := profiles[contract.ClientID]
	contractor := profiles[contract.ContractorID]

	if client.Balance.LessThan(job.Price) {
		return nil, fmt.Errorf("%w: balance %s is below job price %s", ErrInsufficientBalance, client.Balance.StringFixed(2), job.Price.StringFixed(2))
	}

	clientAfter := client.Balance.Sub(job.Price)
	contractorAfter := contractor.Balance.Add(job.Price)
	if client.ID == contractor.ID {
		// debit and credit cancel out on a self-contract
		clientAfter = client.Balance
		contractorAfter = client.Balance
	} else {
		debited, err := tx.Debit(ctx, client.ID, client.Balance, job.Price)
		if err != nil {
			return nil, err
		}
		if !debited {
			return nil, ErrInsufficientBalance
		}
		if err := tx.Credit(ctx, contractor.ID, contractor.Balance, job.Price); err != nil {
			return nil, err
		}
	}

	paidAt := s.now()
	marked, err := tx.MarkJobPaid(ctx, job.ID, paidAt)
	if err != nil {
		return nil, err
	}
	if !marked {
		return nil, ErrAlreadyPaid
	}

	jobRef := job.ID
	if err := tx.AppendEntries(ctx,
		&model.LedgerEntry{ProfileID: client.ID, JobID: &jobRef, Kind: model.LedgerKindPaymentDebit, Amount: job.Price.Neg(), BalanceAfter: clientAfter, CreatedAt: paidAt},
		&model.LedgerEntry{ProfileID: contractor.ID, JobID: &jobRef, Kind: model.LedgerKindPaymentCredit, Amount: job.Price, BalanceAfter: contractorAfter, CreatedAt: paidAt},
	); err != nil {
		return nil, err
	}

	return &model.PaymentReceipt{
		JobID:         job.ID,
		ClientID:      client.ID,
		ContractorID:  contractor.ID,
		Amount:        job.Price,
		ClientBalance: clientAfter,
		PaidAt:        paidAt,
	}, nil
}

// Deposit credits a client's own balance. The amount may not exceed the
// cap ratio of what the client still owes on in-progress contracts.
func (s *PaymentService) Deposit(ctx context.Context, userID uint, amount decimal.Decimal, requester model.Profile) (*model.DepositReceipt, error) {
	if requester.ID != userID || !requester.IsClient() {
		return nil, ErrUnauthorized
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return nil, fmt.Errorf("%w: amount has more than two decimal places", ErrInvalidAmount)
	}

	var receipt *model.DepositReceipt
	err := s.transact(ctx, func(tx *repository.LedgerRepository) error {
		var err error
		receipt, err = s.deposit(ctx, tx, userID, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Uint("profile_id", userID).
		Str("amount", amount.String()).
		Str("balance", receipt.Balance.String()).
		Msg("deposit accepted")
	return receipt, nil
}

func (s *PaymentService) deposit(ctx context.Context, tx *repository.LedgerRepository, userID uint, amount decimal.Decimal) (*model.DepositReceipt, error) {
	profiles, err := tx.LockProfiles(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	profile := profiles[userID]

	outstanding, err := tx.OutstandingForClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit := outstanding.Mul(s.capRatio)
	if amount.GreaterThan(limit) {
		return nil, fmt.Errorf("%w: maximum deposit is %s", ErrDepositLimitExceeded, limit.StringFixed(2))
	}

	if err := tx.Credit(ctx, userID, profile.Balance, amount); err != nil {
		return nil, err
	}
	balance := profile.Balance.Add(amount)
	if err := tx.AppendEntries(ctx, &model.LedgerEntry{
		ProfileID:    userID,
		Kind:         model.LedgerKindDeposit,
		Amount:       amount,
		BalanceAfter: balance,
		CreatedAt:    s.now(),
	}); err != nil {
		return nil, err
	}

	return &model.DepositReceipt{
		ProfileID:   userID,
		Amount:      amount,
		Balance:     balance,
		Outstanding: outstanding,
	}, nil
}

// transact retries once when the store reports a transient conflict.
func (s *PaymentService) transact(ctx context.Context, fn func(tx *repository.LedgerRepository) error) error {
	err := s.ledger.WithinTx(ctx, fn)
	if !repository.IsTransient(err) {
		return err
	}

	s.log.Warn().Err(err).Msg("transient store error, retrying transaction")
	err = s.ledger.WithinTx(ctx, fn)
	if repository.IsTransient(err) {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}
	return err
}
