// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_dash/internal/feature/symbollist/domain/entity"
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	UpsertAll(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols ordered by sort key.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// Seed normalizes the given symbols and upserts them by code.
// Codes are trimmed and upper-cased, later duplicates replace earlier ones,
// and a zero SortKey is replaced by the entry's position (1-based).
// It returns the number of distinct symbols written.
func (u *SymbolUsecase) Seed(ctx context.Context, symbols []entity.Symbol) (int, error) {
	index := make(map[string]int, len(symbols))
	out := make([]entity.Symbol, 0, len(symbols))

	for i, s := range symbols {
		s.Code = strings.ToUpper(strings.TrimSpace(s.Code))
		if s.Code == "" {
			return 0, fmt.Errorf("%w: entry %d", ErrInvalidSymbol, i+1)
		}
		s.Name = strings.TrimSpace(s.Name)
		if s.Name == "" {
			s.Name = s.Code
		}
		if s.SortKey == 0 {
			s.SortKey = i + 1
		}

		if j, ok := index[s.Code]; ok {
			out[j] = s
			continue
		}
		index[s.Code] = len(out)
		out = append(out, s)
	}

	if len(out) == 0 {
		return 0, nil
	}
	if err := u.repo.UpsertAll(ctx, out); err != nil {
		return 0, fmt.Errorf("upsert symbols: %w", err)
	}
	return len(out), nil
}
