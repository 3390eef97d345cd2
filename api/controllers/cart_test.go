package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/securewatch/backend/api/middleware"
	cartsvc "github.com/securewatch/backend/internal/cart"
	pkgerrors "github.com/securewatch/backend/pkg/errors"
)

type stubCartService struct {
	cart    cartsvc.CartDTO
	item    cartsvc.ItemDTO
	removed bool
	err     error
}

func (s stubCartService) Add(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (cartsvc.ItemDTO, error) {
	return s.item, s.err
}

func (s stubCartService) UpdateQuantity(ctx context.Context, sessionID string, itemID uuid.UUID, quantity int) (cartsvc.ItemDTO, bool, error) {
	return s.item, s.removed, s.err
}

func (s stubCartService) Remove(ctx context.Context, sessionID string, itemID uuid.UUID) (bool, error) {
	return s.removed, s.err
}

func (s stubCartService) Clear(ctx context.Context, sessionID string) error {
	return s.err
}

func (s stubCartService) List(ctx context.Context, sessionID string) (cartsvc.CartDTO, error) {
	return s.cart, s.err
}

func withSession(req *http.Request, sessionID string) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func TestCartFetchSuccess(t *testing.T) {
	cart := cartsvc.CartDTO{Items: []cartsvc.LineDTO{}, Total: decimal.Zero}
	handler := CartFetch(stubCartService{cart: cart}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Items == nil {
		t.Fatal("expected items array, got null")
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	handler := CartFetch(stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddCreated(t *testing.T) {
	item := cartsvc.ItemDTO{ID: uuid.New(), SessionID: "sess-1", ProductID: uuid.New(), Quantity: 3}
	handler := CartAdd(stubCartService{item: item}, nil)

	body := strings.NewReader(`{"product_id":"` + item.ProductID.String() + `","quantity":3}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart", body), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.ItemDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Quantity != 3 {
		t.Fatalf("unexpected quantity: %d", envelope.Data.Quantity)
	}
}

func TestCartAddRejectsNegativeQuantity(t *testing.T) {
	handler := CartAdd(stubCartService{}, nil)

	body := strings.NewReader(`{"product_id":"` + uuid.NewString() + `","quantity":-1}`)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart", body), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateItemRemoved(t *testing.T) {
	handler := CartUpdateItem(stubCartService{removed: true}, nil)

	body := strings.NewReader(`{"quantity":0}`)
	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/"+uuid.NewString(), body), "sess-1")
	req = withChiParam(req, "itemId", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data map[string]bool `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data["removed"] {
		t.Fatal("expected removed flag")
	}
}

func TestCartRemoveItemNotFound(t *testing.T) {
	handler := CartRemoveItem(stubCartService{removed: false}, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/"+uuid.NewString(), nil), "sess-1")
	req = withChiParam(req, "itemId", uuid.NewString())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartRemoveItemBadID(t *testing.T) {
	handler := CartRemoveItem(stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/nope", nil), "sess-1")
	req = withChiParam(req, "itemId", "nope")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartErrorPassthrough(t *testing.T) {
	handler := CartClear(stubCartService{err: pkgerrors.New(pkgerrors.CodeDependency, "db down")}, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
