// Package movement classifies stock movement categories: which warehouse
// column a category is attributed to and whether it adds to or removes
// from on-hand stock.
package movement

// Category is a canonical movement category.
type Category string

const (
	Purchase       Category = "purchase"
	PurchaseReturn Category = "purchase_return"
	Sales          Category = "sales"
	SalesReturns   Category = "sales_returns"
	TransferIn     Category = "transfer_in"
	TransferOut    Category = "transfer_out"
	Manufacturing  Category = "manufacturing"
	Wastages       Category = "wastages"
	Consumption    Category = "consumption"
)

// Column selects which warehouse of a movement the category is grouped by.
type Column int

const (
	// ColumnSource is the warehouse the stock left (warehouse_id).
	ColumnSource Column = iota
	// ColumnDest is the warehouse the stock arrived at (warehouse_dest_id).
	ColumnDest
)

// DBName returns the stock_movements column backing c.
func (c Column) DBName() string {
	if c == ColumnDest {
		return "warehouse_dest_id"
	}
	return "warehouse_id"
}

func (c Column) String() string {
	if c == ColumnDest {
		return "dest"
	}
	return "source"
}

// Sign is the direction a category moves on-hand stock.
type Sign int

const (
	Outbound Sign = -1
	Inbound  Sign = 1
)

// Classification is the result of Classify.
type Classification struct {
	Category Category
	Column   Column
	Sign     Sign
	// Known is false when the name matched no alias and fell through.
	Known bool
}

type rule struct {
	column Column
	sign   Sign
	label  string
	// aliases accepted from callers; the first one is the canonical name.
	aliases []string
	// extraStored lists additional movement_type values stored for this category.
	extraStored []string
}

// ordered is the display order of categories.
var ordered = []Category{
	Purchase, PurchaseReturn, Sales, SalesReturns,
	TransferIn, TransferOut, Manufacturing, Wastages, Consumption,
}

var rules = map[Category]rule{
	Purchase:       {column: ColumnDest, sign: Inbound, label: "Purchases", aliases: []string{"purchase", "purchases"}},
	PurchaseReturn: {column: ColumnSource, sign: Outbound, label: "Purchase Returns", aliases: []string{"purchase_return", "purchase_returns"}},
	Sales:          {column: ColumnSource, sign: Outbound, label: "Sales", aliases: []string{"sales", "sale"}},
	SalesReturns:   {column: ColumnSource, sign: Inbound, label: "Sales Returns", aliases: []string{"sales_returns", "sales_return", "sale_return"}},
	TransferIn:     {column: ColumnDest, sign: Inbound, label: "Transfers In", aliases: []string{"transfer_in", "transfer"}},
	TransferOut:    {column: ColumnSource, sign: Outbound, label: "Transfers Out", aliases: []string{"transfer_out"}, extraStored: []string{"transfer"}},
	Manufacturing:  {column: ColumnDest, sign: Inbound, label: "Manufacturing", aliases: []string{"manufacturing", "manufacture"}},
	Wastages:       {column: ColumnSource, sign: Outbound, label: "Wastages", aliases: []string{"wastages", "wastage"}},
	Consumption:    {column: ColumnSource, sign: Outbound, label: "Consumptions", aliases: []string{"consumption", "consumptions"}},
}

// aliasIndex maps every accepted caller alias to its category.
var aliasIndex = func() map[string]Category {
	idx := make(map[string]Category)
	for _, c := range ordered {
		for _, a := range rules[c].aliases {
			idx[a] = c
		}
	}
	return idx
}()

// Classify resolves a caller-supplied movement name. Matching is exact and
// case-sensitive. Unknown names resolve to themselves, grouped by the source
// warehouse and treated as outbound.
func Classify(name string) Classification {
	c, ok := aliasIndex[name]
	if !ok {
		return Classification{Category: Category(name), Column: ColumnSource, Sign: Outbound}
	}
	r := rules[c]
	return Classification{Category: c, Column: r.column, Sign: r.sign, Known: true}
}

// All returns every known category in display order.
func All() []Category {
	return append([]Category(nil), ordered...)
}

// StoredTypes returns the movement_type values that belong to c.
// Unknown categories match only their own name.
func StoredTypes(c Category) []string {
	r, ok := rules[c]
	if !ok {
		return []string{string(c)}
	}
	out := make([]string, 0, len(r.aliases)+len(r.extraStored))
	out = append(out, r.aliases...)
	return append(out, r.extraStored...)
}

// Label returns the display label of c.
func Label(c Category) string {
	if r, ok := rules[c]; ok {
		return r.label
	}
	return string(c)
}

// IsKnown reports whether c is one of the canonical categories.
func IsKnown(c Category) bool {
	_, ok := rules[c]
	return ok
}

// UsesAbsoluteQuantity reports whether stored quantities of c are folded as
// absolute values. Sales returns are stored negative by the upstream system.
func UsesAbsoluteQuantity(c Category) bool {
	return c == SalesReturns
}
