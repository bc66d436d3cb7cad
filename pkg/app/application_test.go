package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelbooking/pkg/config"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type routes func(*httprouter.Router)

func (r routes) RegisterRoutes(router *httprouter.Router) { r(router) }

func newTestApplication() *Application {
	cfg := &config.Config{
		Log:            logger.Discard(),
		Port:           "0",
		RequestTimeout: time.Second,
		IdempotencyTTL: time.Minute,
		MaxRequestSize: 1024,
	}
	a := NewApplication(cfg)

	api := routes(func(r *httprouter.Router) {
		r.POST("/booking/new", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusCreated)
		})
		r.GET("/booking/panic", func(http.ResponseWriter, *http.Request, httprouter.Params) {
			panic("unexpected")
		})
	})
	health := routes(func(r *httprouter.Router) {
		r.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			w.WriteHeader(http.StatusOK)
		})
	})

	a.SetApp(api, health)
	return a
}

func TestApplication_Routing(t *testing.T) {
	a := newTestApplication()
	defer a.idempotencyStore.Stop()

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodPost, "/booking/new", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestApplication_MiddlewareStack(t *testing.T) {
	a := newTestApplication()
	defer a.idempotencyStore.Stop()

	req := httptest.NewRequest(http.MethodPost, "/booking/new", strings.NewReader(`name=alice`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestApplication_ShutdownHooks(t *testing.T) {
	a := newTestApplication()
	defer a.idempotencyStore.Stop()

	var order []string
	a.OnShutdown("publisher", func() error {
		order = append(order, "publisher")
		return errors.New("flush failed")
	})
	a.OnShutdown("mongo", func() error {
		order = append(order, "mongo")
		return nil
	})

	a.runShutdownHooks()
	assert.Equal(t, []string{"publisher", "mongo"}, order)
}
