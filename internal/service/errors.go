package service

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrJobNotFound          = errors.New("job not found")
	ErrAlreadyPaid          = errors.New("job already paid")
	ErrJobNotPaid           = errors.New("job not paid")
	ErrContractNotActive    = errors.New("contract is not in progress")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrDepositLimitExceeded = errors.New("deposit limit exceeded")
	ErrTransientStore       = errors.New("store temporarily unavailable")
)
