package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProfessionEarnings struct {
	Profession string          `json:"profession"`
	Earned     decimal.Decimal `json:"earned"`
}

type ClientPayments struct {
	ID       uint            `json:"id"`
	FullName string          `json:"fullName"`
	Paid     decimal.Decimal `json:"paid"`
}

type BestClientsReport struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Limit       int
	Clients     []ClientPayments
}
