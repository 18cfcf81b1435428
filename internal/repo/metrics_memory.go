package repo

import "context"

type InMemoryMetricsRepository struct {
	productRepo ProductRepository
}

func NewInMemoryMetricsRepository(productRepo ProductRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{productRepo: productRepo}
}

// GetInventoryMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetInventoryMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)

	for _, p := range products {
		p = p.WithStockFlag()
		m.TotalUnits += p.Quantity
		m.StockValue += p.Price * float64(p.Quantity)
		if p.LowStock {
			m.LowStockCount++
		}
	}

	return m, nil
}
