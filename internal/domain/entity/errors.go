package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches any *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownTransactionType matches any *UnknownTransactionTypeError.
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	// ErrUnknownSpeedTier matches any *UnknownSpeedTierError.
	ErrUnknownSpeedTier = errors.New("unknown speed tier")
	// ErrWalletNotFound is returned by holding sources that do not know a wallet.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrUnknownNetwork is returned for a network without a definition or gas profile.
	ErrUnknownNetwork = errors.New("unknown network")
)

// InvalidInputError reports a malformed or out-of-range argument.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// UnknownTransactionTypeError reports a tx type missing from a gas profile.
type UnknownTransactionTypeError struct {
	TxType  TxType
	Network ChainID
}

func (e *UnknownTransactionTypeError) Error() string {
	if e.Network != "" {
		return fmt.Sprintf("unknown transaction type %q for network %s", e.TxType, e.Network)
	}
	return fmt.Sprintf("unknown transaction type %q", e.TxType)
}

func (e *UnknownTransactionTypeError) Is(target error) bool {
	return target == ErrUnknownTransactionType
}

// UnknownSpeedTierError reports a speed outside slow/standard/fast/instant.
type UnknownSpeedTierError struct {
	Speed SpeedTier
}

func (e *UnknownSpeedTierError) Error() string {
	return fmt.Sprintf("unknown speed tier %q", e.Speed)
}

func (e *UnknownSpeedTierError) Is(target error) bool { return target == ErrUnknownSpeedTier }
