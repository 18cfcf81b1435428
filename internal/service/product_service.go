package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rs/zerolog"
)

// ProductInput carries the raw product form fields.
type ProductInput struct {
	ProductName  string
	Name         string
	Quantity     string
	Price        string
	Image        string
	CurrentImage string
}

// DisplayName prefers productName and falls back to the legacy name field.
func (in ProductInput) DisplayName() string {
	if s := strings.TrimSpace(in.ProductName); s != "" {
		return s
	}
	return strings.TrimSpace(in.Name)
}

// ParseQuantity never fails: the leading integer is used, and anything
// unparsable or negative becomes 0.
func (in ProductInput) ParseQuantity() int {
	n, ok := ParseIntPrefix(in.Quantity)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// ParsePrice never fails: the leading decimal is used, and anything
// unparsable, negative or infinite becomes 0.
func (in ProductInput) ParsePrice() float64 {
	f, ok := ParseFloatPrefix(in.Price)
	if !ok || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

type ProductService struct {
	products repo.ProductRepository
	metrics  repo.MetricsRepository
	logger   zerolog.Logger
}

func NewProductService(products repo.ProductRepository, metrics repo.MetricsRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, metrics: metrics, logger: logger}
}

// List returns every product with the low-stock flag derived.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, s.persistence("list products", err)
	}
	for i := range products {
		products[i] = products[i].WithStockFlag()
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int) (models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return models.Product{}, s.mapErr("get product", err)
	}
	return p.WithStockFlag(), nil
}

// Create stores a new product. The uploaded image reference wins over the
// image field; with neither the product has no image.
func (s *ProductService) Create(ctx context.Context, in ProductInput, uploaded string) (int, error) {
	p := models.Product{
		ProductName: in.DisplayName(),
		Quantity:    in.ParseQuantity(),
		Price:       in.ParsePrice(),
		Image:       firstNonEmpty(uploaded, in.Image),
	}
	created, err := s.products.Create(ctx, p)
	if err != nil {
		return 0, s.persistence("create product", err)
	}
	s.logger.Info().Int("product_id", created.ID).Str("name", created.ProductName).Msg("product created")
	return created.ID, nil
}

// Update overwrites every column of product id. Image precedence is uploaded,
// then the image field, then the image the form says is current.
func (s *ProductService) Update(ctx context.Context, id int, in ProductInput, uploaded string) error {
	p := models.Product{
		ID:          id,
		ProductName: in.DisplayName(),
		Quantity:    in.ParseQuantity(),
		Price:       in.ParsePrice(),
		Image:       firstNonEmpty(uploaded, in.Image, in.CurrentImage),
	}
	if _, err := s.products.Update(ctx, p); err != nil {
		return s.mapErr("update product", err)
	}
	s.logger.Info().Int("product_id", id).Msg("product updated")
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return s.mapErr("delete product", err)
	}
	s.logger.Info().Int("product_id", id).Msg("product deleted")
	return nil
}

func (s *ProductService) Metrics(ctx context.Context) (repo.Metrics, error) {
	m, err := s.metrics.GetInventoryMetrics(ctx)
	if err != nil {
		return repo.Metrics{}, s.persistence("inventory metrics", err)
	}
	return m, nil
}

func (s *ProductService) mapErr(op string, err error) error {
	if errors.Is(err, repo.ErrProductNotFound) {
		return ErrNotFound
	}
	return s.persistence(op, err)
}

func (s *ProductService) persistence(op string, err error) error {
	s.logger.Error().Err(err).Str("op", op).Msg("product store failure")
	return fmt.Errorf("%s: %w", op, ErrPersistence)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
