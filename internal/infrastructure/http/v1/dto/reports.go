package dto

import (
	"stockflow/internal/core/id"
	"stockflow/internal/core/types"
	"stockflow/internal/domain/movement"
	"stockflow/internal/domain/reports"
)

// --- Report Request ---

// ReportRequest is the body of every report endpoint. Ids accept JSON
// numbers or numeric strings.
type ReportRequest struct {
	ProductIDs   []id.ID  `json:"productIds"`
	WarehouseIDs []id.ID  `json:"warehouseIds"`
	Movements    []string `json:"movements"`
	FromDate     string   `json:"fromDate"`
	ToDate       string   `json:"toDate"`
}

// ToSelection converts the request into a domain selection.
func (r ReportRequest) ToSelection() reports.Selection {
	return reports.Selection{
		ProductIDs:   r.ProductIDs,
		WarehouseIDs: r.WarehouseIDs,
		Movements:    r.Movements,
		FromDate:     r.FromDate,
		ToDate:       r.ToDate,
	}
}

// ReportQuery holds query parameters of report endpoints.
type ReportQuery struct {
	Shape  string `form:"shape" binding:"omitempty,oneof=tabular legacy"`
	Format string `form:"format"`
}

// --- Movement Report ---

// ReportRowResponse is one product/warehouse line.
type ReportRowResponse struct {
	WarehouseID id.ID `json:"warehouseId"`
	ProductID   id.ID `json:"productId"`
	Moves       Moves `json:"moves"`
}

// ReportResponse is the tabular movement report.
type ReportResponse struct {
	Rows   []ReportRowResponse `json:"rows"`
	Totals Moves               `json:"totals"`
}

// FromReport converts a domain report to the tabular response.
func FromReport(r *reports.Report) *ReportResponse {
	resp := &ReportResponse{
		Rows:   make([]ReportRowResponse, len(r.Rows)),
		Totals: FromMoves(r.Categories, r.Totals()),
	}
	for i, row := range r.Rows {
		resp.Rows[i] = ReportRowResponse{
			WarehouseID: row.WarehouseID,
			ProductID:   row.ProductID,
			Moves:       FromMoves(r.Categories, row.Moves),
		}
	}
	return resp
}

// LegacyReportResponse is the warehouse-keyed shape older clients read:
// byWarehouse[warehouseId][movement] = quantity summed over products.
type LegacyReportResponse struct {
	ByWarehouse map[string]Moves `json:"byWarehouse"`
}

// FromReportLegacy converts a domain report to the legacy response.
func FromReportLegacy(r *reports.Report) *LegacyReportResponse {
	grouped := r.Cells.ByWarehouse()
	resp := &LegacyReportResponse{ByWarehouse: make(map[string]Moves, len(grouped))}
	for wh, moves := range grouped {
		resp.ByWarehouse[wh.String()] = movesOf(moves)
	}
	return resp
}

// --- As-Of Report ---

// AsOfRowResponse is the running balance of one product in one warehouse.
type AsOfRowResponse struct {
	WarehouseID id.ID   `json:"warehouseId"`
	ProductID   id.ID   `json:"productId"`
	Opening     float64 `json:"opening"`
	Adjustments float64 `json:"adjustments"`
	Moves       Moves   `json:"moves"`
	Closing     float64 `json:"closing"`
}

// AsOfTotalsResponse sums every as-of row.
type AsOfTotalsResponse struct {
	Opening     float64 `json:"opening"`
	Adjustments float64 `json:"adjustments"`
	Moves       Moves   `json:"moves"`
	Closing     float64 `json:"closing"`
}

// AsOfResponse is the as-of report.
type AsOfResponse struct {
	Rows                   []AsOfRowResponse  `json:"rows"`
	Totals                 AsOfTotalsResponse `json:"totals"`
	AdjustmentsUnavailable bool               `json:"adjustmentsUnavailable,omitempty"`
}

// FromAsOfReport converts a domain as-of report to response DTO.
func FromAsOfReport(r *reports.AsOfReport) *AsOfResponse {
	resp := &AsOfResponse{
		Rows:                   make([]AsOfRowResponse, len(r.Rows)),
		AdjustmentsUnavailable: r.AdjustmentsUnavailable,
	}

	opening, adjustments, closing := types.Zero(), types.Zero(), types.Zero()
	moves := make(map[movement.Category]types.Quantity, len(r.Categories))

	for i, row := range r.Rows {
		c := row.Closing()
		resp.Rows[i] = AsOfRowResponse{
			WarehouseID: row.WarehouseID,
			ProductID:   row.ProductID,
			Opening:     types.Float64(row.Opening),
			Adjustments: types.Float64(row.Adjustments),
			Moves:       FromMoves(r.Categories, row.Moves),
			Closing:     types.Float64(c),
		}

		opening = opening.Add(row.Opening)
		adjustments = adjustments.Add(row.Adjustments)
		closing = closing.Add(c)
		for cat, q := range row.Moves {
			moves[cat] = moves[cat].Add(q)
		}
	}

	resp.Totals = AsOfTotalsResponse{
		Opening:     types.Float64(opening),
		Adjustments: types.Float64(adjustments),
		Moves:       FromMoves(r.Categories, moves),
		Closing:     types.Float64(closing),
	}
	return resp
}

func movesOf(m map[movement.Category]types.Quantity) Moves {
	out := make(Moves, len(m))
	for c, q := range m {
		out[string(c)] = types.Float64(q)
	}
	return out
}
