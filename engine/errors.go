package engine

import "errors"

var (
	// ErrInsufficientFunds is returned when the player cannot pay for an upgrade
	ErrInsufficientFunds = errors.New("insufficient funds")
)
