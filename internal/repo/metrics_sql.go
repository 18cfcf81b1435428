package repo

import (
	"context"
	"database/sql"

	"github.com/rogerio-castellano/supermarket/internal/models"
)

type SQLMetricsRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLMetricsRepository(db *sql.DB, dialect Dialect) *SQLMetricsRepository {
	return &SQLMetricsRepository{db: db, dialect: dialect}
}

// GetInventoryMetrics implements MetricsRepository.
func (r *SQLMetricsRepository) GetInventoryMetrics(ctx context.Context) (Metrics, error) {
	query := r.dialect.Rebind(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN quantity > 0 THEN quantity ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN quantity < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(price * CASE WHEN quantity > 0 THEN quantity ELSE 0 END), 0)
		FROM products`)
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var m Metrics
	err := r.db.QueryRowContext(ctx, query, models.LowStockThreshold).
		Scan(&m.TotalProducts, &m.TotalUnits, &m.LowStockCount, &m.StockValue)
	return m, err
}
