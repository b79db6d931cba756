package warehouse

import (
	"context"
	"fmt"

	"stockflow/pkg/logger"
)

// Service serves warehouse picker data.
type Service struct {
	repo Repository
}

// NewService creates a new warehouse service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all active warehouses.
func (s *Service) List(ctx context.Context) ([]Warehouse, error) {
	items, truncated, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	if truncated {
		logger.Warn(ctx, "warehouse catalog truncated", "loaded", len(items))
	}
	if items == nil {
		items = []Warehouse{}
	}
	return items, nil
}
