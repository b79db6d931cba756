package nomenclature

import (
	"context"
	"fmt"

	"stockflow/internal/core/id"
	"stockflow/pkg/logger"
)

// Service serves product picker data.
type Service struct {
	repo Repository
}

// NewService creates a new product catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search loads the active catalog and filters it by name and barcode prefix.
func (s *Service) Search(ctx context.Context, q Query) (*SearchResult, error) {
	products, truncated, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if truncated {
		logger.Warn(ctx, "product catalog truncated", "loaded", len(products))
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	names := make(map[id.ID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	items := make([]Item, 0, len(products))
	for _, p := range products {
		it := Item{ID: p.ID, Label: p.Name, Code: p.Code()}
		if p.CategoryID != nil {
			it.Category = names[*p.CategoryID]
		}
		items = append(items, it)
	}

	return &SearchResult{Items: Filter(items, q), Truncated: truncated}, nil
}
