package reports

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockflow/internal/core/apperror"
	"stockflow/internal/core/id"
	"stockflow/internal/domain/movement"
)

type fakeNames struct {
	products   map[id.ID]ProductName
	warehouses map[id.ID]string
	categories map[id.ID]string
	err        error
}

func (f *fakeNames) ProductNames(context.Context, []id.ID) (map[id.ID]ProductName, error) {
	return f.products, f.err
}

func (f *fakeNames) WarehouseNames(context.Context, []id.ID) (map[id.ID]string, error) {
	return f.warehouses, f.err
}

func (f *fakeNames) FetchCategoryNames(context.Context, []id.ID) (map[id.ID]string, error) {
	return f.categories, f.err
}

func newTestService(store *fakeStore, names CatalogNames) *Service {
	agg := NewAggregator(store)
	return NewService(agg, NewBalanceCalculator(agg, &fakeAdjustments{}), names)
}

func TestService_ReportRows(t *testing.T) {
	store := &fakeStore{rows: []storedMovement{
		{product: flour, dest: mainWH, typ: "purchase", qty: "10", at: day("2024-01-02")},
		{product: sugar, source: storeWH, typ: "sales", qty: "4", at: day("2024-01-02")},
		{product: sugar, source: storeWH, typ: "sale", qty: "1", at: day("2024-01-03")},
	}}
	svc := newTestService(store, nil)

	report, err := svc.Report(context.Background(), Selection{
		ProductIDs:   []id.ID{flour, sugar},
		WarehouseIDs: []id.ID{mainWH, storeWH},
		Movements:    []string{"purchases", "sales"},
	})

	require.NoError(t, err)
	assert.Equal(t, []movement.Category{movement.Purchase, movement.Sales}, report.Categories)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, flour, report.Rows[0].ProductID)
	assertQty(t, "10", report.Rows[0].Moves[movement.Purchase])
	assertQty(t, "5", report.Rows[1].Moves[movement.Sales])

	totals := report.Totals()
	assertQty(t, "10", totals[movement.Purchase])
	assertQty(t, "5", totals[movement.Sales])
}

func TestService_QueryFailureBecomesDataAccessError(t *testing.T) {
	store := &fakeStore{failOn: map[movement.Category]error{movement.Sales: errTimeout}}
	svc := newTestService(store, nil)

	_, err := svc.Report(context.Background(), Selection{
		ProductIDs:   []id.ID{flour},
		WarehouseIDs: []id.ID{mainWH},
		Movements:    []string{"sales"},
	})

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDataAccess, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
	assert.Equal(t, errTimeout.Error(), appErr.Message)
	assert.Equal(t, "sales", appErr.Details["movement"])
	assert.True(t, errors.Is(err, errTimeout))
}

func TestService_ValidationPassesThrough(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)

	_, err := svc.AsOf(context.Background(), Selection{})

	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, http.StatusBadRequest, apperror.GetHTTPStatus(err))
}

func TestService_Labels(t *testing.T) {
	bakery := id.ID(5)
	names := &fakeNames{
		products: map[id.ID]ProductName{
			flour: {Name: "Flour", Barcode: "4000", CategoryID: &bakery},
			sugar: {Name: "Sugar"},
		},
		warehouses: map[id.ID]string{mainWH: "Main"},
		categories: map[id.ID]string{bakery: "Bakery"},
	}
	svc := newTestService(&fakeStore{}, names)

	labels := svc.Labels(context.Background(), []id.ID{flour, sugar, 99}, []id.ID{mainWH, storeWH})

	assert.Equal(t, "Flour (4000) - Bakery", labels.Product(flour))
	assert.Equal(t, "Sugar", labels.Product(sugar))
	assert.Equal(t, "99", labels.Product(99))
	assert.Equal(t, "Main", labels.Warehouse(mainWH))
	assert.Equal(t, "20", labels.Warehouse(storeWH))
}

func TestService_LabelsDegrade(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeNames{err: errors.New("boom")})

	labels := svc.Labels(context.Background(), []id.ID{flour}, []id.ID{mainWH})

	assert.Equal(t, "1", labels.Product(flour))
	assert.Equal(t, "10", labels.Warehouse(mainWH))
}
