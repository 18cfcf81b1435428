package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rogerio-castellano/supermarket/internal/views"
)

const (
	msgAllFieldsRequired  = "All fields are required."
	msgInvalidCredentials = "Invalid email or password."
	msgLoginSuccessful    = "Login successful!"
	msgRegistered         = "Registration successful! Please log in."
	msgRegisterFailed     = "Registration failed"
)

// HomeHandler sends admins to the inventory, other users to the shop and
// anonymous visitors to the login page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	u, ok := session.FromContext(r.Context()).User()
	switch {
	case !ok:
		http.Redirect(w, r, "/login", http.StatusFound)
	case u.IsAdmin():
		http.Redirect(w, r, "/inventory", http.StatusFound)
	default:
		http.Redirect(w, r, "/shopping", http.StatusFound)
	}
}

func LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "login", views.Page{Title: "Login"})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	user, err := authService.Login(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		redirectWithFlash(w, r, session.FlashError, msgAllFieldsRequired, "/login")
		return
	case errors.Is(err, service.ErrInvalidCredentials):
		logger.Info().Str("email", r.PostFormValue("email")).Msg("failed login attempt")
		if loginGuard != nil {
			loginGuard.RecordFailure(r)
		}
		redirectWithFlash(w, r, session.FlashError, msgInvalidCredentials, "/login")
		return
	case err != nil:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if loginGuard != nil {
		loginGuard.RecordSuccess(r)
	}

	sess := session.FromContext(r.Context())
	sess.RenewID()
	sess.SetUser(user)

	target := "/shopping"
	if user.IsAdmin() {
		target = "/inventory"
	}
	redirectWithFlash(w, r, session.FlashSuccess, msgLoginSuccessful, target)
}

func RegisterPageHandler(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "register", views.Page{Title: "Register", Form: map[string]string{}})
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in := registerInputFromForm(r)

	if _, err := authService.Register(r.Context(), in); err != nil {
		msg := msgRegisterFailed
		if errors.Is(err, service.ErrMissingCredentials) {
			msg = msgAllFieldsRequired
		}
		render(w, r, http.StatusOK, "register", views.Page{
			Title:    "Register",
			Messages: map[string][]string{session.FlashError: {msg}},
			Form:     registerFormEcho(in),
		})
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, msgRegistered, "/login")
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Destroy()
	http.Redirect(w, r, "/", http.StatusFound)
}
