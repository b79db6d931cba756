package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
)

const (
	flour id.ID = 1
	sugar id.ID = 2

	mainWH  id.ID = 10
	storeWH id.ID = 20
)

func TestAggregate_SumsPerCell(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, dest: mainWH, typ: "purchase", qty: "10", at: day("2024-01-02")},
		{product: flour, dest: mainWH, typ: "purchases", qty: "5", at: day("2024-01-03")},
		{product: flour, source: mainWH, typ: "sales", qty: "2", at: day("2024-01-04")},
	}}
	agg := NewAggregator(store)

	cells, err := agg.Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"purchase", "sales"},
		FromDate:     "2024-01-01",
		ToDate:       "2024-01-31",
	})

	require.NoError(t, err)
	assertQty(t, "15", cells.Get(flour, mainWH, movement.Purchase))
	assertQty(t, "2", cells.Get(flour, mainWH, movement.Sales))
	assertQty(t, "13", cells.Net(flour, mainWH))
	assert.Equal(t, 2, cells.Len())
}

func TestAggregate_GroupingColumn(t *testing.T) {
	// one transfer from main to store, stored with the generic "transfer" type
	store := &fakeStore{rows: []storedMovement{
		{product: flour, source: mainWH, dest: storeWH, typ: "transfer", qty: "3", at: day("2024-01-05")},
	}}
	agg := NewAggregator(store)

	cells, err := agg.Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH, storeWH},
		Movements:    []string{"transfer_in", "transfer_out"},
	})

	require.NoError(t, err)
	assertQty(t, "3", cells.Get(flour, storeWH, movement.TransferIn))
	assertQty(t, "3", cells.Get(flour, mainWH, movement.TransferOut))
	assert.False(t, cells.Has(flour, mainWH, movement.TransferIn))
	assert.False(t, cells.Has(flour, storeWH, movement.TransferOut))

	for _, q := range store.queries {
		switch q.Category {
		case movement.TransferIn:
			assert.Equal(t, movement.ColumnDest, q.Column)
		case movement.TransferOut:
			assert.Equal(t, movement.ColumnSource, q.Column)
		}
	}
}

func TestAggregate_SalesReturnsUseAbsoluteValue(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: sugar, source: storeWH, typ: "sales_return", qty: "-4", at: day("2024-02-01")},
	}}
	agg := NewAggregator(store)

	cells, err := agg.Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{sugar},
		WarehouseIDs: []id.ID{storeWH},
		Movements:    []string{"sales_returns"},
	})

	require.NoError(t, err)
	assertQty(t, "4", cells.Get(sugar, storeWH, movement.SalesReturns))
	assertQty(t, "4", cells.Net(sugar, storeWH))
}

func TestAggregate_FractionalQuantities(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, source: mainWH, typ: "wastage", qty: "0.1", at: day("2024-01-02")},
		{product: flour, source: mainWH, typ: "wastages", qty: "0.2", at: day("2024-01-03")},
	}}

	cells, err := NewAggregator(store).Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"wastage"},
	})

	require.NoError(t, err)
	assertQty(t, "0.3", cells.Get(flour, mainWH, movement.Wastages))
}

func TestAggregate_ValidationRunsNoQueries(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want string
	}{
		{"no products", Selection{WarehouseIDs: []id.ID{mainWH}, Movements: []string{"sales"}}, MsgNoProducts},
		{"no warehouses", Selection{ProductIDs: []id.ID{flour}, Movements: []string{"sales"}}, MsgNoWarehouse},
		{"no movements", Selection{ProductIDs: []id.ID{flour}, WarehouseIDs: []id.ID{mainWH}}, MsgNoMovements},
		{"everything missing reports products first", Selection{}, MsgNoProducts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}

			_, err := NewAggregator(store).Aggregate(context.Background(), tt.sel)

			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.want, appErr.Message)
			assert.Zero(t, store.queryCount())
		})
	}
}

func TestAggregate_FailureDiscardsPartialResults(t *testing.T) {
	store := &fakeStore{
		rows: []storedMovement{
			{product: flour, dest: mainWH, typ: "purchase", qty: "10", at: day("2024-01-02")},
		},
		failOn: map[movement.Category]error{movement.Wastages: errTimeout},
	}

	cells, err := NewAggregator(store, WithMaxParallel(1)).Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"purchase", "sales", "wastages", "consumption", "manufacturing"},
	})

	assert.Nil(t, cells)
	var qf *QueryFailure
	require.True(t, errors.As(err, &qf))
	assert.Equal(t, movement.Wastages, qf.Category)
	assert.ErrorIs(t, err, errTimeout)
}

func TestAggregate_DeduplicatesAliases(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, source: mainWH, typ: "sale", qty: "1", at: day("2024-01-02")},
		{product: flour, source: mainWH, typ: "sales", qty: "2", at: day("2024-01-02")},
	}}

	cells, err := NewAggregator(store).Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"sale", "sales", "sale"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, store.queryCount())
	assert.Equal(t, []string{"sales", "sale"}, store.queries[0].StoredTypes)
	assertQty(t, "3", cells.Get(flour, mainWH, movement.Sales))
}

func TestAggregate_UnknownMovement(t *testing.T) {
	sel := Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"gift"},
	}
	rows := []storedMovement{
		{product: flour, source: mainWH, typ: "gift", qty: "7", at: day("2024-01-02")},
	}

	t.Run("permissive", func(t *testing.T) {
		store := &fakeStore{rows: rows}

		cells, err := NewAggregator(store).Aggregate(context.Background(), sel)

		require.NoError(t, err)
		assertQty(t, "7", cells.Get(flour, mainWH, "gift"))
		assert.Equal(t, movement.ColumnSource, store.queries[0].Column)
		assert.Equal(t, []string{"gift"}, store.queries[0].StoredTypes)
	})

	t.Run("strict", func(t *testing.T) {
		store := &fakeStore{rows: rows}

		_, err := NewAggregator(store, WithStrictMovements(true)).Aggregate(context.Background(), sel)

		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Contains(t, err.Error(), "Unknown movement type: gift")
		assert.Zero(t, store.queryCount())
	})
}

func TestAggregate_DateBoundsInclusive(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, dest: mainWH, typ: "purchase", qty: "1", at: day("2023-12-31")},
		{product: flour, dest: mainWH, typ: "purchase", qty: "2", at: day("2024-01-01")},
		{product: flour, dest: mainWH, typ: "purchase", qty: "4", at: day("2024-01-31")},
		{product: flour, dest: mainWH, typ: "purchase", qty: "8", at: day("2024-02-01")},
	}}

	cells, err := NewAggregator(store).Aggregate(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"purchase"},
		FromDate:     "2024-01-01",
		ToDate:       "2024-01-31",
	})

	require.NoError(t, err)
	assertQty(t, "6", cells.Get(flour, mainWH, movement.Purchase))
}

func TestAggregate_AdditiveOverAdjacentRanges(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, dest: mainWH, typ: "purchase", qty: "3", at: day("2024-01-10")},
		{product: flour, dest: mainWH, typ: "purchase", qty: "5", at: day("2024-01-15")},
		{product: flour, dest: mainWH, typ: "purchase", qty: "7", at: day("2024-01-16")},
		{product: sugar, source: mainWH, typ: "sales", qty: "2", at: day("2024-01-20")},
	}}
	agg := NewAggregator(store)
	base := Selection{
		ProductIDs:   []id.ID{flour, sugar},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"purchase", "sales"},
	}

	whole := base
	whole.FromDate, whole.ToDate = "2024-01-01", "2024-01-31"
	first := base
	first.FromDate, first.ToDate = "2024-01-01", "2024-01-15"
	second := base
	second.FromDate, second.ToDate = "2024-01-16", "2024-01-31"

	all, err := agg.Aggregate(context.Background(), whole)
	require.NoError(t, err)
	a, err := agg.Aggregate(context.Background(), first)
	require.NoError(t, err)
	b, err := agg.Aggregate(context.Background(), second)
	require.NoError(t, err)

	a.Merge(b)
	require.Equal(t, all.Len(), a.Len())
	for _, c := range all.Cells() {
		assertQty(t, c.Quantity.String(), a.Get(c.ProductID, c.WarehouseID, c.Category))
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, dest: mainWH, typ: "purchase", qty: "3", at: day("2024-01-10")},
		{product: flour, source: mainWH, typ: "consumptions", qty: "1.5", at: day("2024-01-11")},
	}}
	agg := NewAggregator(store)
	sel := Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"purchase", "consumptions"},
	}

	first, err := agg.Aggregate(context.Background(), sel)
	require.NoError(t, err)
	second, err := agg.Aggregate(context.Background(), sel)
	require.NoError(t, err)

	assert.Equal(t, first.Cells(), second.Cells())
}

func TestCellMap_ByWarehouseReconcilesWithCells(t *testing.T) {
	m := NewCellMap()
	m.Add(CellKey{flour, mainWH, movement.Sales}, types.MustQuantity("2"))
	m.Add(CellKey{sugar, mainWH, movement.Sales}, types.MustQuantity("3"))
	m.Add(CellKey{sugar, storeWH, movement.Purchase}, types.MustQuantity("9"))

	byWH := m.ByWarehouse()

	assertQty(t, "5", byWH[mainWH][movement.Sales])
	assertQty(t, "9", byWH[storeWH][movement.Purchase])

	cells := m.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, flour, cells[0].ProductID)
	assert.Equal(t, storeWH, cells[2].WarehouseID)
}
