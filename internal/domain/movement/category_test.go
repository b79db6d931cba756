package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_AliasesResolveIdentically(t *testing.T) {
	tests := []struct {
		aliases []string
		want    Classification
	}{
		{[]string{"purchase", "purchases"}, Classification{Purchase, ColumnDest, Inbound, true}},
		{[]string{"sales", "sale"}, Classification{Sales, ColumnSource, Outbound, true}},
		{[]string{"sales_returns", "sales_return", "sale_return"}, Classification{SalesReturns, ColumnSource, Inbound, true}},
		{[]string{"purchase_return", "purchase_returns"}, Classification{PurchaseReturn, ColumnSource, Outbound, true}},
		{[]string{"manufacturing", "manufacture"}, Classification{Manufacturing, ColumnDest, Inbound, true}},
		{[]string{"wastages", "wastage"}, Classification{Wastages, ColumnSource, Outbound, true}},
		{[]string{"consumption", "consumptions"}, Classification{Consumption, ColumnSource, Outbound, true}},
		{[]string{"transfer_in", "transfer"}, Classification{TransferIn, ColumnDest, Inbound, true}},
		{[]string{"transfer_out"}, Classification{TransferOut, ColumnSource, Outbound, true}},
	}

	for _, tt := range tests {
		t.Run(string(tt.want.Category), func(t *testing.T) {
			for _, a := range tt.aliases {
				assert.Equal(t, tt.want, Classify(a), "alias %q", a)
			}
		})
	}
}

func TestClassify_CanonicalNameIsStable(t *testing.T) {
	for _, c := range All() {
		got := Classify(string(c))
		assert.True(t, got.Known)
		assert.Equal(t, c, got.Category)
		assert.Equal(t, got, Classify(string(got.Category)))
	}
}

func TestClassify_UnknownFallsThrough(t *testing.T) {
	got := Classify("gift")
	assert.False(t, got.Known)
	assert.Equal(t, Category("gift"), got.Category)
	assert.Equal(t, ColumnSource, got.Column)

	// case-sensitive, no fuzzy matching
	assert.False(t, Classify("Sales").Known)
	assert.False(t, Classify(" sales").Known)
}

func TestColumn_DBName(t *testing.T) {
	assert.Equal(t, "warehouse_id", ColumnSource.DBName())
	assert.Equal(t, "warehouse_dest_id", ColumnDest.DBName())
}

func TestStoredTypes(t *testing.T) {
	assert.Equal(t, []string{"sales", "sale"}, StoredTypes(Sales))
	assert.Equal(t, []string{"transfer_out", "transfer"}, StoredTypes(TransferOut))
	assert.Equal(t, []string{"transfer_in", "transfer"}, StoredTypes(TransferIn))
	assert.Equal(t, []string{"gift"}, StoredTypes("gift"))
}

func TestSigns(t *testing.T) {
	inbound := []Category{Purchase, Manufacturing, TransferIn, SalesReturns}
	outbound := []Category{Sales, PurchaseReturn, Wastages, Consumption, TransferOut}

	for _, c := range inbound {
		assert.Equal(t, Inbound, Classify(string(c)).Sign, c)
	}
	for _, c := range outbound {
		assert.Equal(t, Outbound, Classify(string(c)).Sign, c)
	}
	assert.Len(t, All(), len(inbound)+len(outbound))
}

func TestLabelAndAbs(t *testing.T) {
	assert.Equal(t, "Purchases", Label(Purchase))
	assert.Equal(t, "gift", Label("gift"))
	assert.True(t, UsesAbsoluteQuantity(SalesReturns))
	assert.False(t, UsesAbsoluteQuantity(Sales))
}
