package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rs/zerolog"
)

// Summary is what the checkout page shows.
type Summary struct {
	Items []models.CartLineItem
	Total float64
}

// CartService applies cart operations to a session's cart value. It never
// stores the cart itself; callers write the returned cart back.
type CartService struct {
	products repo.ProductRepository
	logger   zerolog.Logger
}

func NewCartService(products repo.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{products: products, logger: logger}
}

// AddItem snapshots the product's name, price and image into a new line or
// increases the quantity of the existing one. Stock is not checked.
func (s *CartService) AddItem(ctx context.Context, cart models.Cart, productID, quantity int) (models.Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			return cart, ErrNotFound
		}
		s.logger.Error().Err(err).Int("product_id", productID).Msg("failed to load product for cart")
		return cart, fmt.Errorf("add to cart: %w", ErrPersistence)
	}
	if quantity < 1 {
		quantity = 1
	}
	return cart.Add(models.CartLineItem{
		ProductID:   p.ID,
		ProductName: p.ProductName,
		Price:       p.Price,
		Quantity:    quantity,
		Image:       p.Image,
	}), nil
}

func (s *CartService) RemoveItem(cart models.Cart, productID int) models.Cart {
	return cart.Remove(productID)
}

func (s *CartService) View(cart models.Cart) []models.CartLineItem {
	return cart.Items()
}

func (s *CartService) CheckoutSummary(cart models.Cart) (Summary, error) {
	if cart.IsEmpty() {
		return Summary{}, ErrEmptyCart
	}
	return Summary{Items: cart.Items(), Total: cart.Total()}, nil
}

// ConfirmOrder records nothing; it validates the cart and hands back an empty one.
func (s *CartService) ConfirmOrder(cart models.Cart) (models.Cart, error) {
	if cart.IsEmpty() {
		return cart, ErrEmptyCart
	}
	return models.Cart{}, nil
}

func (s *CartService) Clear(models.Cart) models.Cart {
	return models.Cart{}
}
