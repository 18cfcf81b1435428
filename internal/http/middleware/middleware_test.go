package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rs/zerolog"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func requestWithSession(method, target string, data session.Data) (*http.Request, *session.Session) {
	sess := session.New(data)
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(session.NewContext(req.Context(), sess)), sess
}

func TestRequireAuthenticated(t *testing.T) {
	tests := []struct {
		name       string
		data       session.Data
		expectCode int
		location   string
	}{
		{"anonymous", session.Data{}, http.StatusFound, "/login"},
		{"customer", session.Data{UserID: 2, Username: "bob", Role: models.RoleCustomer}, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, sess := requestWithSession(http.MethodGet, "/cart", tt.data)
			w := httptest.NewRecorder()
			RequireAuthenticated(okHandler).ServeHTTP(w, req)

			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("expected location %q, got %q", tt.location, got)
			}
			if tt.location != "" {
				msgs := sess.Flashes()[session.FlashError]
				if len(msgs) != 1 || msgs[0] != MsgLoginRequired {
					t.Errorf("unexpected flash %v", msgs)
				}
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		data       session.Data
		expectCode int
	}{
		{"anonymous", session.Data{}, http.StatusFound},
		{"customer", session.Data{UserID: 2, Role: models.RoleCustomer}, http.StatusFound},
		{"admin", session.Data{UserID: 1, Role: models.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, sess := requestWithSession(http.MethodGet, "/inventory", tt.data)
			w := httptest.NewRecorder()
			RequireAdmin(okHandler).ServeHTTP(w, req)

			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
			if w.Code == http.StatusFound {
				if loc := w.Header().Get("Location"); loc != "/shopping" {
					t.Errorf("expected redirect to /shopping, got %q", loc)
				}
				if msgs := sess.Flashes()[session.FlashError]; len(msgs) != 1 || msgs[0] != MsgAccessDenied {
					t.Errorf("unexpected flash %v", msgs)
				}
			}
		})
	}
}

func TestGatesCompose(t *testing.T) {
	req, _ := requestWithSession(http.MethodGet, "/inventory", session.Data{})
	w := httptest.NewRecorder()
	RequireAuthenticated(RequireAdmin(okHandler)).ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("anonymous user should be sent to /login first, got %q", loc)
	}
}

func TestLowercasePaths(t *testing.T) {
	tests := []struct {
		method     string
		target     string
		expectCode int
		location   string
	}{
		{http.MethodGet, "/InVentory?x=1", http.StatusMovedPermanently, "/inventory?x=1"},
		{http.MethodGet, "/Product/3", http.StatusMovedPermanently, "/product/3"},
		{http.MethodGet, "/shopping", http.StatusOK, ""},
		{http.MethodPost, "/Login", http.StatusOK, ""},
		{http.MethodGet, "/images/1700-Banana.PNG", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := httptest.NewRecorder()
			LowercasePaths("/images/")(okHandler).ServeHTTP(w, httptest.NewRequest(tt.method, tt.target, nil))

			if w.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d", tt.expectCode, w.Code)
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Errorf("expected location %q, got %q", tt.location, got)
			}
		})
	}
}

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		method string
		target string
		want   string
	}{
		{http.MethodPost, "/updateproduct/1?_method=PUT", http.MethodPut},
		{http.MethodPost, "/cart/delete/1?_method=delete", http.MethodDelete},
		{http.MethodPost, "/cart/delete/1?_method=GET", http.MethodPost},
		{http.MethodGet, "/deleteproduct/1?_method=DELETE", http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var got string
			h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Method
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.target, nil))
			if got != tt.want {
				t.Errorf("expected method %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestErrorHandling_RecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := ErrorHandling(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("panic recovered")) {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	h := RequestLogging(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/shopping", nil))

	if !bytes.Contains(buf.Bytes(), []byte(`"status":418`)) {
		t.Errorf("expected status in log line, got %s", buf.String())
	}
}
