package usecase

import "errors"

var (
	// ErrEmptyTicker is returned when no ticker symbol was supplied.
	ErrEmptyTicker = errors.New("ticker symbol is required")

	// ErrInvalidRange is returned when the requested date range is outside
	// the selectable window or its bounds are reversed.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNoHistory is returned when the provider knows no trading history for
	// the symbol in the requested range.
	ErrNoHistory = errors.New("no trading history for symbol")

	// ErrMarketUnavailable wraps any other failure of the market-data provider.
	ErrMarketUnavailable = errors.New("market data unavailable")
)
