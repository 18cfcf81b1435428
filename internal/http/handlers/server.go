package handlers

import (
	"github.com/rogerio-castellano/supermarket/internal/http/ban"
	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/upload"
	"github.com/rogerio-castellano/supermarket/internal/views"
	"github.com/rs/zerolog"
)

var (
	productService *service.ProductService
	cartService    *service.CartService
	authService    *service.AuthService
	uploads        *upload.Storage
	renderer       *views.Renderer
	loginGuard     *ban.Guard

	logger = zerolog.Nop()
)

func SetProductService(s *service.ProductService) {
	productService = s
}

func SetCartService(s *service.CartService) {
	cartService = s
}

func SetAuthService(s *service.AuthService) {
	authService = s
}

func SetUploadStorage(s *upload.Storage) {
	uploads = s
}

func SetRenderer(r *views.Renderer) {
	renderer = r
}

func SetLoginGuard(g *ban.Guard) {
	loginGuard = g
}

func SetLogger(l zerolog.Logger) {
	logger = l
}
