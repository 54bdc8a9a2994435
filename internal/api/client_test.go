package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"pricesense/internal/config"
	"pricesense/internal/model"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.APIConfig{
		BaseURL:        baseURL,
		HealthPath:     "/",
		RequestTimeout: time.Second,
		UserAgent:      "test",
	}, zerolog.Nop())
}

func TestDeleteProductRequiresID(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.DeleteProduct(context.Background(), "")
	if err == nil {
		t.Fatal("empty id must fail")
	}
	if calls != 0 {
		t.Fatalf("no request should be made, got %d", calls)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("local validation errors carry no status, got %d", apiErr.Status)
	}
}

func TestDeleteProductSuccessStatuses(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusOK, http.StatusAccepted} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Fatalf("expected DELETE, got %s", r.Method)
			}
			if r.URL.Path != "/products/42" {
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(status)
		}))

		if err := newTestClient(srv.URL).DeleteProduct(context.Background(), "42"); err != nil {
			t.Fatalf("status %d should be success: %v", status, err)
		}
		srv.Close()
	}
}

func TestDeleteProductFailureCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "product is locked"})
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).DeleteProduct(context.Background(), "42")
	if err == nil {
		t.Fatal("409 must fail")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", apiErr.Status)
	}
	if apiErr.Message != "product is locked" {
		t.Fatalf("structured message should win, got %q", apiErr.Message)
	}
}

func TestListProductsForwardsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "name": "Widget", "current_price": 9.99}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	payload, err := c.ListProducts(context.Background(), "widget")
	if err != nil {
		t.Fatalf("list should succeed: %v", err)
	}
	if gotQuery != "widget" {
		t.Fatalf("query not forwarded, got %q", gotQuery)
	}
	if len(payload) == 0 {
		t.Fatal("payload should be returned raw")
	}

	gotQuery = "unset"
	if _, err := c.ListProducts(context.Background(), "  "); err != nil {
		t.Fatalf("blank query list should succeed: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("blank query must not be sent, got %q", gotQuery)
	}
}

func TestAddProductOmitsBlankURL(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "9", "name": body["name"], "current_price": 0})
	}))
	defer srv.Close()

	created, err := newTestClient(srv.URL).AddProduct(context.Background(), model.ProductDraft{Name: "Lamp"})
	if err != nil {
		t.Fatalf("add should succeed: %v", err)
	}
	if created.ID != "9" {
		t.Fatalf("expected created id 9, got %q", created.ID)
	}
	if _, ok := body["url"]; ok {
		t.Fatalf("blank url must be omitted from the payload: %#v", body)
	}
}

func TestTransportErrorNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	_, err := newTestClient(srv.URL).ListAlerts(context.Background())
	if err == nil {
		t.Fatal("unreachable server must fail")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("transport failures must normalize to *api.Error, got %T", err)
	}
	if apiErr.Status != 0 {
		t.Fatalf("no response means no status, got %d", apiErr.Status)
	}
	if apiErr.Message == "" {
		t.Fatal("message must describe the failure")
	}
}

func TestHealthcheckUsesConfiguredPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		HealthPath:     "/healthz",
		RequestTimeout: time.Second,
	}, zerolog.Nop())

	if err := c.Healthcheck(context.Background()); err != nil {
		t.Fatalf("healthcheck should succeed: %v", err)
	}
	if gotPath != "/healthz" {
		t.Fatalf("expected /healthz, got %s", gotPath)
	}
}

func TestUnstructuredErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListProducts(context.Background(), "")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Message != "api error (500): boom" {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}
	if string(apiErr.Body) != "boom" {
		t.Fatalf("body should be preserved, got %q", apiErr.Body)
	}
}
