package ledger

import (
	"sort"

	"makhzan/internal/core/types"
)

// StockStatus classifies a material's balance against its threshold.
type StockStatus string

const (
	StatusOK         StockStatus = "OK"
	StatusLow        StockStatus = "LOW"
	StatusOutOfStock StockStatus = "OUT_OF_STOCK"
)

// StatusOf classifies a balance. Zero and negative balances both read
// as out of stock: a negative figure means more was issued than
// received, and for alerting purposes the shelf is just as empty.
func StatusOf(currentStock, minQuantity types.Quantity) StockStatus {
	switch {
	case !currentStock.IsPositive():
		return StatusOutOfStock
	case currentStock.LessThanOrEqual(minQuantity):
		return StatusLow
	default:
		return StatusOK
	}
}

// LowStockItem is one alert row.
type LowStockItem struct {
	MaterialReport

	Status StockStatus `json:"status"`

	// Deficit is minQuantity - currentStock; zero exactly at the
	// threshold boundary.
	Deficit types.Quantity `json:"deficit"`

	// ImminentDepletion marks the boundary case currentStock == minQuantity.
	ImminentDepletion bool `json:"imminentDepletion"`
}

// DeficitLabel renders the deficit for display. The boundary case
// carries a warning instead of a zero deficit.
func (i LowStockItem) DeficitLabel() string {
	if i.ImminentDepletion {
		return "نفاد وشيك"
	}
	return i.Deficit.String()
}

// EvaluateLowStock returns the alert rows: every material whose balance
// is at or below its threshold, most critical (lowest stock) first.
// Materials with a zero threshold still alert once stock reaches zero.
func EvaluateLowStock(reports []MaterialReport) []LowStockItem {
	items := make([]LowStockItem, 0)
	for _, r := range reports {
		if r.CurrentStock.GreaterThan(r.MinQuantity) {
			continue
		}
		items = append(items, LowStockItem{
			MaterialReport:    r,
			Status:            StatusOf(r.CurrentStock, r.MinQuantity),
			Deficit:           r.MinQuantity.Sub(r.CurrentStock),
			ImminentDepletion: r.CurrentStock.Equal(r.MinQuantity),
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CurrentStock.LessThan(items[b].CurrentStock)
	})

	return items
}
