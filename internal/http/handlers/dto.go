package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/supermarket/internal/service"
)

type HealthResult struct {
	Status string `json:"status"`
}

// parseForm reads urlencoded or multipart bodies up to maxUploadBytes.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

func productInputFromForm(r *http.Request) service.ProductInput {
	return service.ProductInput{
		ProductName:  r.FormValue("productName"),
		Name:         r.FormValue("name"),
		Quantity:     r.FormValue("quantity"),
		Price:        r.FormValue("price"),
		Image:        r.FormValue("image"),
		CurrentImage: r.FormValue("currentImage"),
	}
}

func registerInputFromForm(r *http.Request) service.RegisterInput {
	return service.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Address:  r.FormValue("address"),
		Contact:  r.FormValue("contact"),
		Role:     r.FormValue("role"),
	}
}

// registerFormEcho is what the register page shows again after a failed
// attempt. The password is never echoed.
func registerFormEcho(in service.RegisterInput) map[string]string {
	return map[string]string{
		"username": in.Username,
		"email":    in.Email,
		"address":  in.Address,
		"contact":  in.Contact,
		"role":     in.Role,
	}
}
