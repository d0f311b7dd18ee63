package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/contracts-service/internal/model"
)

// LedgerRepository owns every balance mutation. Writes are only reachable
// through a repository bound to a transaction by WithinTx.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) WithinTx(ctx context.Context, fn func(tx *LedgerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&LedgerRepository{db: tx})
	})
}

// forUpdate adds FOR UPDATE on PostgreSQL. SQLite has no row locks; its
// single connection already serializes transactions.
func (r *LedgerRepository) forUpdate(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// LockJob loads the job row locked and its contract.
func (r *LedgerRepository) LockJob(ctx context.Context, jobID uint) (*model.Job, error) {
	var job model.Job
	if err := r.forUpdate(ctx).Where("id = ?", jobID).Take(&job).Error; err != nil {
		return nil, err
	}
	var contract model.Contract
	if err := r.db.WithContext(ctx).Where("id = ?", job.ContractID).Take(&contract).Error; err != nil {
		return nil, err
	}
	job.Contract = &contract
	return &job, nil
}

// LockProfiles locks the given profiles in ascending id order.
func (r *LedgerRepository) LockProfiles(ctx context.Context, ids ...uint) (map[uint]*model.Profile, error) {
	var profiles []model.Profile
	if err := r.forUpdate(ctx).Where("id IN ?", ids).Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	result := make(map[uint]*model.Profile, len(profiles))
	for i := range profiles {
		result[profiles[i].ID] = &profiles[i]
	}
	for _, id := range ids {
		if _, ok := result[id]; !ok {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return result, nil
}

// ErrBalanceChanged means the stored balance no longer matches the value
// the caller read in the same transaction.
var ErrBalanceChanged = errors.New("balance changed concurrently")

// Debit writes current-amount as the new balance. It reports false when
// current does not cover amount.
func (r *LedgerRepository) Debit(ctx context.Context, profileID uint, current, amount decimal.Decimal) (bool, error) {
	if current.LessThan(amount) {
		return false, nil
	}
	return true, r.swapBalance(ctx, profileID, current, current.Sub(amount))
}

// Credit writes current+amount as the new balance.
func (r *LedgerRepository) Credit(ctx context.Context, profileID uint, current, amount decimal.Decimal) error {
	return r.swapBalance(ctx, profileID, current, current.Add(amount))
}

// swapBalance stores a balance computed in Go instead of doing arithmetic
// in SQL, where SQLite would round through float64. The update only lands
// while the row still holds from.
func (r *LedgerRepository) swapBalance(ctx context.Context, profileID uint, from, to decimal.Decimal) error {
	if to.IsNegative() {
		return fmt.Errorf("balance of profile %d would become %s", profileID, to.String())
	}
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ? AND balance = ?", profileID, from).
		Update("balance", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Profile{}).Where("id = ?", profileID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrBalanceChanged
}

// MarkJobPaid flips paid to true once. It reports false when the job was
// already paid.
func (r *LedgerRepository) MarkJobPaid(ctx context.Context, jobID uint, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Job{}).
		Where("id = ? AND (paid IS NULL OR paid = ?)", jobID, false).
		Updates(map[string]interface{}{
			"paid":         true,
			"payment_date": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// OutstandingForClient sums unpaid job prices on the client's in-progress contracts.
func (r *LedgerRepository) OutstandingForClient(ctx context.Context, clientID uint) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		JOIN contracts c ON c.id = j.contract_id
		WHERE c.client_id = ?
			AND c.status = ?
			AND (j.paid IS NULL OR j.paid = ?)
	`, clientID, model.ContractStatusInProgress, false).Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	// prices carry two decimals; SQLite sums them as float64
	return total.Round(2), nil
}

func (r *LedgerRepository) AppendEntries(ctx context.Context, entries ...*model.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

func (r *LedgerRepository) ListEntries(ctx context.Context, profileID uint, limit int) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	q := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// IsTransient reports store errors that a fresh transaction may not hit:
// serialization failures and deadlocks on PostgreSQL, busy/locked on SQLite,
// and a balance that moved under the transaction.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrBalanceChanged) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
