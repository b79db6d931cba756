package report_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockflow/internal/core/id"
	"stockflow/internal/infrastructure/storage/postgres"
)

func TestAdjustmentsQuery(t *testing.T) {
	repo := NewAdjustmentRepo(nil)
	asOf := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	sql, args, err := repo.adjustmentsQuery([]id.ID{1, 2}, []id.ID{10}, asOf).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT product_id, warehouse_id, COALESCE(SUM(quantity), 0) AS quantity FROM stock_adjustments "+
			"WHERE product_id IN ($1,$2) AND warehouse_id IN ($3) AND adjusted_at < $4 "+
			"GROUP BY product_id, warehouse_id",
		sql)
	assert.Equal(t, []any{id.ID(1), id.ID(2), id.ID(10), asOf}, args)
}

func TestAdjustmentRecordColumns(t *testing.T) {
	assert.Equal(t,
		[]string{"product_id", "warehouse_id", "quantity", "adjusted_at"},
		postgres.ExtractDBColumns[AdjustmentRecord]())
}
