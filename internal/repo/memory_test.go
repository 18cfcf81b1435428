package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/rogerio-castellano/supermarket/internal/models"
)

func TestInMemoryProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryProductRepository()

	created, err := r.Create(ctx, models.Product{ProductName: "Apples", Quantity: 40, Price: 1.2, Image: "apples.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}

	created.Quantity = 10
	if _, err := r.Update(ctx, created); err != nil {
		t.Fatalf("unexpected error on update: %v", err)
	}

	got, err := r.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error on get: %v", err)
	}
	if got.Quantity != 10 || got.Image != "apples.png" {
		t.Errorf("unexpected product after update: %+v", got)
	}

	if _, err := r.Update(ctx, models.Product{ID: 99}); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on update, got %v", err)
	}
	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error on delete: %v", err)
	}
	if err := r.Delete(ctx, created.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound on second delete, got %v", err)
	}
}

func TestInMemoryUserRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryUserRepository()

	if _, err := r.CreateUser(ctx, models.User{Username: "ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := r.CreateUser(ctx, models.User{Username: "ann2", Email: "ANN@example.com"})
	if !errors.Is(err, ErrDuplicatedValueUnique) {
		t.Errorf("expected ErrDuplicatedValueUnique, got %v", err)
	}

	if _, err := r.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInMemoryMetricsRepository(t *testing.T) {
	ctx := context.Background()
	products := NewInMemoryProductRepository()
	products.Create(ctx, models.Product{ProductName: "Rice", Quantity: 29, Price: 2})
	products.Create(ctx, models.Product{ProductName: "Beans", Quantity: 30, Price: 1})
	products.Create(ctx, models.Product{ProductName: "Salt", Quantity: 0, Price: 5})

	m, err := NewInMemoryMetricsRepository(products).GetInventoryMetrics(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Metrics{TotalProducts: 3, TotalUnits: 59, LowStockCount: 2, StockValue: 88}
	if m != want {
		t.Errorf("expected %+v, got %+v", want, m)
	}
}
