package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rogerio-castellano/supermarket/internal/views"
)

const msgCartEmpty = "Your cart is empty"

// AddToCartHandler adds the product to the session cart, merging with an
// existing line. The leading integer of the quantity field is used; a missing
// or invalid quantity counts as 1.
func AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	quantity, _ := service.ParseIntPrefix(r.PostFormValue("quantity"))

	sess := session.FromContext(r.Context())
	cart, err := cartService.AddItem(r.Context(), sess.Cart(), id, quantity)
	if errors.Is(err, service.ErrNotFound) {
		http.Error(w, msgProductNotFound, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Error retrieving product", http.StatusInternalServerError)
		return
	}

	sess.SetCart(cart)
	http.Redirect(w, r, "/cart", http.StatusFound)
}

func CartHandler(w http.ResponseWriter, r *http.Request) {
	cart := session.FromContext(r.Context()).Cart()
	render(w, r, http.StatusOK, "cart", views.Page{
		Title: "Cart",
		Cart:  cartService.View(cart),
		Total: cart.Total(),
	})
}

// RemoveFromCartHandler drops a line from the cart. Unknown ids are ignored.
func RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if id, err := idParam(r); err == nil && !sess.Cart().IsEmpty() {
		sess.SetCart(cartService.RemoveItem(sess.Cart(), id))
	}
	http.Redirect(w, r, "/cart", http.StatusFound)
}

func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := cartService.CheckoutSummary(session.FromContext(r.Context()).Cart())
	if errors.Is(err, service.ErrEmptyCart) {
		redirectWithFlash(w, r, session.FlashError, msgCartEmpty, "/cart")
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	render(w, r, http.StatusOK, "checkout", views.Page{Title: "Checkout", Cart: summary.Items, Total: summary.Total})
}

// ConfirmCheckoutHandler empties the cart. No order is stored and no payment is taken.
func ConfirmCheckoutHandler(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	cart, err := cartService.ConfirmOrder(sess.Cart())
	if errors.Is(err, service.ErrEmptyCart) {
		redirectWithFlash(w, r, session.FlashError, msgCartEmpty, "/cart")
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sess.SetCart(cart)
	if u, ok := sess.User(); ok {
		logger.Info().Int("user_id", u.ID).Msg("order confirmed")
	}
	http.Redirect(w, r, "/checkout/success", http.StatusFound)
}

func CheckoutSuccessHandler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "checkoutSuccess", views.Page{Title: "Order placed"})
}
