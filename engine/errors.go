package engine

import "errors"

var (
	ErrUnknownUpgrade      = errors.New("engine: unknown upgrade")
	ErrInvalidUpgradeValue = errors.New("engine: invalid upgrade value")
	ErrUnknownJoker        = errors.New("engine: unknown joker")
	ErrInsufficientFunds   = errors.New("engine: insufficient funds")
)
