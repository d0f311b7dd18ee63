package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerKind string

const (
	LedgerKindPaymentDebit  LedgerKind = "payment_debit"
	LedgerKindPaymentCredit LedgerKind = "payment_credit"
	LedgerKindDeposit       LedgerKind = "deposit"
)

// LedgerEntry records one balance mutation. Entries are written in the
// same transaction as the mutation and never updated.
type LedgerEntry struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ProfileID    uint            `gorm:"not null;index" json:"profileId"`
	JobID        *uint           `gorm:"index" json:"jobId,omitempty"`
	Kind         LedgerKind      `gorm:"type:varchar(32);not null" json:"kind"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balanceAfter"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
}
