package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/views"
)

const msgProductNotFound = "Product not found"

// InventoryHandler lists every product for admins together with stock metrics.
func InventoryHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := views.Page{Title: "Inventory", Products: products}
	if m, err := productService.Metrics(r.Context()); err == nil {
		page.Metrics = &m
	}
	render(w, r, http.StatusOK, "inventory", page)
}

func ShoppingHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.List(r.Context())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, "shopping", views.Page{Title: "Shop", Products: products})
}

func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := loadProduct(w, r)
	if !ok {
		return
	}
	render(w, r, http.StatusOK, "product", views.Page{Title: product.ProductName, Product: product})
}

func AddProductPageHandler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "addProduct", views.Page{Title: "Add product"})
}

// CreateProductHandler accepts the add-product form, optionally with an image file.
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	image, err := saveUploadedImage(r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store product image")
		http.Error(w, "Failed to add product", http.StatusInternalServerError)
		return
	}

	if _, err := productService.Create(r.Context(), productInputFromForm(r), image); err != nil {
		http.Error(w, "Failed to add product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/inventory", http.StatusFound)
}

func UpdateProductPageHandler(w http.ResponseWriter, r *http.Request) {
	product, ok := loadProduct(w, r)
	if !ok {
		return
	}
	render(w, r, http.StatusOK, "updateProduct", views.Page{Title: "Update product", Product: product})
}

// UpdateProductHandler serves both PUT and the POST fallback used by plain forms.
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	image, err := saveUploadedImage(r)
	if err != nil {
		logger.Error().Err(err).Msg("failed to store product image")
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}

	err = productService.Update(r.Context(), id, productInputFromForm(r), image)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/inventory", http.StatusFound)
}

func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}

	err = productService.Delete(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/inventory", http.StatusFound)
}

func loadProduct(w http.ResponseWriter, r *http.Request) (product models.Product, ok bool) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return product, false
	}

	product, err = productService.GetByID(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return product, false
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return product, false
	}
	return product, true
}

// saveUploadedImage stores the "image" file part, if one was sent.
func saveUploadedImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	file.Close()
	return uploads.Save(header)
}
