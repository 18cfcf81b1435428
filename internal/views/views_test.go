package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rogerio-castellano/supermarket/internal/session"
)

func TestRenderer_AllPagesRender(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	admin := &session.CurrentUser{ID: 1, Username: "ann", Role: models.RoleAdmin}
	product := models.Product{ID: 3, ProductName: "Apples", Quantity: 12, Price: 1.5, Image: "apples.png", LowStock: true}
	line := models.CartLineItem{ProductID: 3, ProductName: "Apples", Price: 1.5, Quantity: 2}

	pages := map[string]Page{
		"login":           {},
		"register":        {Form: map[string]string{"username": "bob"}},
		"inventory":       {User: admin, Products: []models.Product{product}, Metrics: &repo.Metrics{TotalProducts: 1}},
		"shopping":        {Products: []models.Product{product}},
		"product":         {Product: product},
		"addProduct":      {User: admin},
		"updateProduct":   {User: admin, Product: product},
		"cart":            {User: admin, Cart: []models.CartLineItem{line}, Total: 3, CartCount: 1},
		"checkout":        {User: admin, Cart: []models.CartLineItem{line}, Total: 3},
		"checkoutSuccess": {User: admin},
	}

	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			if err := r.Render(w, http.StatusOK, name, data); err != nil {
				t.Fatalf("render: %v", err)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("unexpected content type %q", ct)
			}
			if !strings.Contains(w.Body.String(), "</html>") {
				t.Error("expected full layout")
			}
		})
	}
}

func TestRenderer_LayoutShowsUserAndFlash(t *testing.T) {
	r := Must()
	w := httptest.NewRecorder()
	err := r.Render(w, http.StatusOK, "shopping", Page{
		User:      &session.CurrentUser{ID: 2, Username: "bob", Role: models.RoleCustomer},
		Messages:  map[string][]string{session.FlashSuccess: {"Login successful!"}},
		CartCount: 4,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	for _, want := range []string{"Login successful!", "Cart (4)", "bob", "Logout"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "/inventory") {
		t.Error("customers should not see the inventory link")
	}
}

func TestRenderer_EscapesProductName(t *testing.T) {
	r := Must()
	w := httptest.NewRecorder()
	_ = r.Render(w, http.StatusOK, "product", Page{Product: models.Product{ID: 1, ProductName: "<script>x</script>"}})

	if strings.Contains(w.Body.String(), "<script>x</script>") {
		t.Error("product name must be HTML escaped")
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	if err := Must().Render(httptest.NewRecorder(), http.StatusOK, "nope", Page{}); err == nil {
		t.Error("expected error for unknown page")
	}
}

func TestRenderer_UpdateFormPriceIsPlainDecimal(t *testing.T) {
	r := Must()
	w := httptest.NewRecorder()
	err := r.Render(w, http.StatusOK, "updateProduct", Page{
		User:    &session.CurrentUser{ID: 1, Username: "ann", Role: models.RoleAdmin},
		Product: models.Product{ID: 5, ProductName: "TV", Quantity: 1, Price: 1000000},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	body := w.Body.String()
	if !strings.Contains(body, `value="1000000.00"`) {
		t.Error("expected the price input to hold 1000000.00")
	}
	if strings.Contains(body, "e+06") {
		t.Error("price must not use exponent notation")
	}
}
