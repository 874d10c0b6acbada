// Package search matches free-text queries against the company directory.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/stockpulse/internal/cache"
	"github.com/bobmcallan/stockpulse/internal/common"
	"github.com/bobmcallan/stockpulse/internal/interfaces"
	"github.com/bobmcallan/stockpulse/internal/models"
)

const (
	equityType = "Equity"
	usRegion   = "United States"
)

// Service implements SearchService
type Service struct {
	cache  interfaces.Cache
	logger *common.Logger
}

// NewService creates a search service
func NewService(c interfaces.Cache, logger *common.Logger) *Service {
	return &Service{cache: c, logger: logger}
}

// SearchSymbols returns directory entries whose symbol or name contains
// query, case-insensitively, ordered by symbol. No match is an empty
// slice, not an error; a blank query is ErrInvalidInput.
func (s *Service) SearchSymbols(ctx context.Context, query string) (models.Result[[]models.SymbolInfo], error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.Result[[]models.SymbolInfo]{}, fmt.Errorf("%w: search query is required", common.ErrInvalidInput)
	}

	key := cache.SearchKey(q)
	if hits, ok := cache.Load[[]models.SymbolInfo](ctx, s.cache, key); ok {
		return models.Result[[]models.SymbolInfo]{Data: hits, Cached: true}, nil
	}

	hits := Match(q)
	if err := cache.Store(ctx, s.cache, key, hits, common.TTLSearch); err != nil {
		s.logger.Warn().Err(err).Str("query", q).Msg("Failed to cache search results")
	}
	return models.Result[[]models.SymbolInfo]{Data: hits}, nil
}

// Match scans the directory for q, which must already be lower case.
func Match(q string) []models.SymbolInfo {
	hits := []models.SymbolInfo{}
	for _, sym := range models.KnownSymbols() {
		info, _ := models.LookupCompany(sym)
		if !strings.Contains(strings.ToLower(sym), q) && !strings.Contains(strings.ToLower(info.Name), q) {
			continue
		}
		hits = append(hits, models.SymbolInfo{
			Symbol:   sym,
			Name:     info.Name,
			Type:     equityType,
			Region:   usRegion,
			Sector:   info.Sector,
			Industry: info.Industry,
		})
	}
	return hits
}

// Ensure Service implements SearchService
var _ interfaces.SearchService = (*Service)(nil)
