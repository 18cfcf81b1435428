package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rogerio-castellano/supermarket/internal/views"
)

// maxUploadBytes bounds product form bodies, image included.
const maxUploadBytes = 10 << 20

// render fills in the per-request layout fields and writes the page.
func render(w http.ResponseWriter, r *http.Request, status int, page string, data views.Page) {
	sess := session.FromContext(r.Context())
	if u, ok := sess.User(); ok {
		data.User = &u
	}
	data.CartCount = sess.Cart().Count()

	flashes := sess.Flashes()
	if data.Messages == nil {
		data.Messages = flashes
	} else {
		for kind, msgs := range flashes {
			data.Messages[kind] = append(msgs, data.Messages[kind]...)
		}
	}

	if err := renderer.Render(w, status, page, data); err != nil {
		logger.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, msg, target string) {
	session.FromContext(r.Context()).AddFlash(kind, msg)
	http.Redirect(w, r, target, http.StatusFound)
}

func idParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}
