package repo

import "context"

// Metrics summarises the catalogue for the inventory view.
type Metrics struct {
	TotalProducts int     `json:"total_products"`
	TotalUnits    int     `json:"total_units"`
	LowStockCount int     `json:"low_stock_count"`
	StockValue    float64 `json:"stock_value"`
}

type MetricsRepository interface {
	GetInventoryMetrics(ctx context.Context) (Metrics, error)
}
