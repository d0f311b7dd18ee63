package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Job struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Paid        *bool           `json:"paid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	ContractID  uint            `gorm:"not null;index" json:"ContractId"`
	Contract    *Contract       `gorm:"foreignKey:ContractID" json:"Contract,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsPaid treats null and false alike.
func (j Job) IsPaid() bool {
	return j.Paid != nil && *j.Paid
}

type PaymentReceipt struct {
	JobID         uint            `json:"jobId"`
	ClientID      uint            `json:"clientId"`
	ContractorID  uint            `json:"contractorId"`
	Amount        decimal.Decimal `json:"amount"`
	ClientBalance decimal.Decimal `json:"clientBalance"`
	PaidAt        time.Time       `json:"paidAt"`
}

type DepositReceipt struct {
	ProfileID   uint            `json:"profileId"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// JobDocument carries everything needed to render a payment receipt.
type JobDocument struct {
	Job        Job
	Contract   Contract
	Client     Profile
	Contractor Profile
}
