package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/swiftcart/storefront-state/api/middleware"
	"github.com/swiftcart/storefront-state/internal/queries"
	"github.com/swiftcart/storefront-state/internal/session"
	"github.com/swiftcart/storefront-state/internal/state"
	"github.com/swiftcart/storefront-state/pkg/storage"
)

func newCartTestRouter(t *testing.T) (chi.Router, *state.Store) {
	t.Helper()
	ctx := context.Background()
	mem := storage.NewMemory()
	gate, err := session.NewGate(ctx, mem, nil)
	if err != nil {
		t.Fatalf("NewGate failed: %v", err)
	}
	store, err := state.NewStore(ctx, state.StoreParams{Adapter: mem, Gate: gate})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Login(ctx, "demo", "test-token"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	engine, err := queries.New(store)
	if err != nil {
		t.Fatalf("queries.New failed: %v", err)
	}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUsername(req.Context(), "demo")))
		})
	})
	r.Get("/cart", CartFetch(engine, nil))
	r.Post("/cart", CartAdd(store, nil))
	r.Put("/cart/{productId}", CartUpdate(store, nil))
	r.Delete("/cart/{productId}", CartRemove(store, nil))
	r.Delete("/cart", CartClear(store, nil))
	return r, store
}

func postJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCartAddAndFetch(t *testing.T) {
	router, _ := newCartTestRouter(t)

	resp := postJSON(t, router, http.MethodPost, "/cart", `{"product_id":"p1","product_price":10.5,"quantity":2,"product_title":"Mug"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("add: expected 200 got %d body=%s", resp.Code, resp.Body.String())
	}

	resp = postJSON(t, router, http.MethodGet, "/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Items     map[string]state.CartItem `json:"items"`
			ItemCount int                       `json:"item_count"`
			TotalCost string                    `json:"total_cost"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 2 || envelope.Data.TotalCost != "21.00" {
		t.Fatalf("unexpected aggregates %+v", envelope.Data)
	}
	if envelope.Data.Items["p1"].Quantity != 2 {
		t.Fatalf("unexpected items %+v", envelope.Data.Items)
	}
}

func TestCartAddValidation(t *testing.T) {
	router, _ := newCartTestRouter(t)

	resp := postJSON(t, router, http.MethodPost, "/cart", `{"product_price":10,"quantity":1}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateMissingProductIs404(t *testing.T) {
	router, _ := newCartTestRouter(t)

	resp := postJSON(t, router, http.MethodPut, "/cart/p404", `{"quantity":3}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestCartUpdateZeroRemoves(t *testing.T) {
	router, store := newCartTestRouter(t)

	if resp := postJSON(t, router, http.MethodPost, "/cart", `{"product_id":"p1","product_price":5,"quantity":1}`); resp.Code != http.StatusOK {
		t.Fatalf("seed: expected 200 got %d", resp.Code)
	}

	resp := postJSON(t, router, http.MethodPut, "/cart/p1", `{"quantity":0}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data mutationResponse `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Result != state.ResultRemoved {
		t.Fatalf("expected removed, got %v", envelope.Data.Result)
	}
	if len(store.CartFor("demo")) != 0 {
		t.Fatal("cart entry should be deleted")
	}
}

func TestCartClear(t *testing.T) {
	router, store := newCartTestRouter(t)

	if resp := postJSON(t, router, http.MethodPost, "/cart", `{"product_id":"p1","product_price":5,"quantity":1}`); resp.Code != http.StatusOK {
		t.Fatalf("seed: expected 200 got %d", resp.Code)
	}

	resp := postJSON(t, router, http.MethodDelete, "/cart", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(store.CartFor("demo")) != 0 {
		t.Fatal("cart should be empty")
	}

	// Clearing again is a domain miss.
	resp = postJSON(t, router, http.MethodDelete, "/cart", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
