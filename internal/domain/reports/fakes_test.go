package reports

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
)

// storedMovement mirrors a stock_movements row.
type storedMovement struct {
	product id.ID
	source  id.ID
	dest    id.ID
	typ     string
	qty     string
	at      time.Time
}

// fakeStore answers movement queries from memory the way the SQL does.
type fakeStore struct {
	mu      sync.Mutex
	rows    []storedMovement
	queries []MovementQuery
	failOn  map[movement.Category]error
}

func (s *fakeStore) FetchMovements(ctx context.Context, q MovementQuery) ([]MovementEvent, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	err := s.failOn[q.Category]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var out []MovementEvent
	for _, r := range s.rows {
		if !slices.Contains(q.StoredTypes, r.typ) || !slices.Contains(q.ProductIDs, r.product) {
			continue
		}
		wh := r.source
		if q.Column == movement.ColumnDest {
			wh = r.dest
		}
		if !slices.Contains(q.WarehouseIDs, wh) || !q.Range.Contains(r.at) {
			continue
		}
		out = append(out, MovementEvent{
			ProductID:   r.product,
			WarehouseID: wh,
			Type:        r.typ,
			Quantity:    types.MustQuantity(r.qty),
			OccurredAt:  r.at,
		})
	}
	return out, nil
}

func (s *fakeStore) queryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queries)
}

type fakeAdjustments struct {
	items []StockAdjustment
	err   error
	asOf  time.Time
	calls int
}

func (f *fakeAdjustments) FetchStockAdjustments(_ context.Context, _, _ []id.ID, asOf time.Time) ([]StockAdjustment, error) {
	f.calls++
	f.asOf = asOf
	return f.items, f.err
}

var errTimeout = errors.New("canceling statement due to statement timeout")

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

func assertQty(t *testing.T, want string, got types.Quantity) {
	t.Helper()
	assert.Truef(t, types.MustQuantity(want).Equal(got), "want %s, got %s", want, got.String())
}
