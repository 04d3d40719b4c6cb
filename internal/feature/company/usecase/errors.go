package usecase

import "errors"

var (
	// ErrEmptyTicker is returned when no ticker symbol was supplied.
	ErrEmptyTicker = errors.New("ticker symbol is required")

	// ErrCompanyNotFound is returned when the provider has no profile for the symbol.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrProfileUnavailable wraps any other failure of the profile provider.
	ErrProfileUnavailable = errors.New("company profile unavailable")
)
