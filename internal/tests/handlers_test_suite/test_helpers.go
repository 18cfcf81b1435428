package handlers_test_suite

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rogerio-castellano/supermarket/internal/auth"
	handler "github.com/rogerio-castellano/supermarket/internal/http/handlers"
	"github.com/rogerio-castellano/supermarket/internal/http/router"
	"github.com/rogerio-castellano/supermarket/internal/models"
	"github.com/rogerio-castellano/supermarket/internal/repo"
	"github.com/rogerio-castellano/supermarket/internal/service"
	"github.com/rogerio-castellano/supermarket/internal/session"
	"github.com/rogerio-castellano/supermarket/internal/upload"
	"github.com/rogerio-castellano/supermarket/internal/views"
	"github.com/rs/zerolog"
)

const (
	adminEmail    = "admin@example.com"
	customerEmail = "bob@example.com"
	password      = "secret"
)

var (
	productRepo  *repo.InMemoryProductRepository
	userRepo     *repo.InMemoryUserRepository
	sessionStore *session.MemoryStore
	manager      *session.Manager
	uploadDir    string
)

func init() {
	setupTestRepos(password)
}

func setupTestRepos(password string) {
	logger := zerolog.Nop()

	productRepo = repo.NewInMemoryProductRepository()
	userRepo = repo.NewInMemoryUserRepository()

	handler.SetProductService(service.NewProductService(productRepo, repo.NewInMemoryMetricsRepository(productRepo), logger))
	handler.SetCartService(service.NewCartService(productRepo, logger))
	handler.SetAuthService(service.NewAuthService(userRepo, logger))
	handler.SetRenderer(views.Must())

	var err error
	uploadDir, err = os.MkdirTemp("", "supermarket-uploads-")
	if err != nil {
		panic(fmt.Sprintf("error creating upload dir: %v", err))
	}
	handler.SetUploadStorage(upload.NewStorage(uploadDir))

	hash, _ := auth.HashPassword(password)
	userRepo.CreateUser(context.Background(), models.User{Username: "admin", Email: adminEmail, PasswordHash: hash, Role: models.RoleAdmin})
	userRepo.CreateUser(context.Background(), models.User{Username: "bob", Email: customerEmail, PasswordHash: hash, Role: models.RoleCustomer})

	sessionStore = session.NewMemoryStore()
	manager = session.NewManager(sessionStore, auth.NewTokenIssuer("test-secret", time.Hour), logger)
}

func newRouter() http.Handler {
	return router.NewRouter(router.Config{
		Sessions:  manager,
		Logger:    zerolog.Nop(),
		StaticDir: uploadDir,
	})
}

func clearAllProducts() {
	productRepo.Clear()
}

func clearAllUsersExceptSeeded() {
	userRepo.Clear(adminEmail, customerEmail)
}

// client is a browser stand-in that keeps the session cookie between requests.
type client struct {
	h      http.Handler
	cookie *http.Cookie
}

func newClient(h http.Handler) *client {
	return &client{h: h}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name != session.CookieName {
			continue
		}
		if ck.MaxAge < 0 {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postMultipart(target string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	body, contentType := multipartForm(fields, filename, content)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	return c.do(req)
}

func (c *client) login(email, password string) *httptest.ResponseRecorder {
	return c.postForm("/login", url.Values{"email": {email}, "password": {password}})
}

func loggedIn(h http.Handler, email string) *client {
	c := newClient(h)
	w := c.login(email, password)
	if w.Code != http.StatusFound {
		panic(fmt.Sprintf("login as %s failed with %d", email, w.Code))
	}
	return c
}

func multipartForm(fields map[string]string, filename, content string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range fields {
		writer.WriteField(k, v)
	}
	if filename != "" {
		part, _ := writer.CreateFormFile("image", filename)
		io.WriteString(part, content)
	}

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func addProduct(name string, quantity int, price float64, image string) models.Product {
	p, err := productRepo.Create(context.Background(), models.Product{
		ProductName: name,
		Quantity:    quantity,
		Price:       price,
		Image:       image,
	})
	if err != nil {
		panic(err)
	}
	return p
}
