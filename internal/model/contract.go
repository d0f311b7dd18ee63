package model

import "time"

type ContractStatus string

const (
	ContractStatusNew        ContractStatus = "new"
	ContractStatusInProgress ContractStatus = "in_progress"
	ContractStatusTerminated ContractStatus = "terminated"
)

type Contract struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Terms        string         `gorm:"type:text;not null" json:"terms"`
	Status       ContractStatus `gorm:"type:varchar(16);not null;index" json:"status"`
	ClientID     uint           `gorm:"not null;index" json:"ClientId"`
	ContractorID uint           `gorm:"not null;index" json:"ContractorId"`
	Client       *Profile       `gorm:"foreignKey:ClientID" json:"Client,omitempty"`
	Contractor   *Profile       `gorm:"foreignKey:ContractorID" json:"Contractor,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// HasParty reports whether the profile is the client or the contractor of the contract.
func (c Contract) HasParty(profileID uint) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}
