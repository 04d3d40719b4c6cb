package usecase

import "errors"

// ErrInvalidSymbol is returned by Seed when an entry has no code.
var ErrInvalidSymbol = errors.New("symbol code is required")
