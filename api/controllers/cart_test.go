package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/aresapparel/apparel-backend/api/middleware"
	cartsvc "github.com/aresapparel/apparel-backend/internal/cart"
	pkgerrors "github.com/aresapparel/apparel-backend/pkg/errors"
)

type stubCartService struct {
	view     *cartsvc.CartView
	item     *cartsvc.CartItemDTO
	count    int64
	cleared  int64
	err      error
	addCalls []int
}

func (s *stubCartService) View(ctx context.Context, userID uuid.UUID) (*cartsvc.CartView, error) {
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID, qty int) (*cartsvc.CartItemDTO, error) {
	s.addCalls = append(s.addCalls, qty)
	return s.item, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, qty int) (*cartsvc.CartItemDTO, error) {
	return s.item, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return s.err
}

func (s *stubCartService) ClearCart(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.cleared, s.err
}

func (s *stubCartService) ItemCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.count, s.err
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestCartViewSuccess(t *testing.T) {
	view := &cartsvc.CartView{
		Summary: cartsvc.CartSummary{
			TotalItems:        3,
			TotalPriceCents:   220000,
			TotalPrice:        "2200.00",
			TotalPriceDisplay: "Rs. 2,200.00",
		},
	}
	handler := CartView(&stubCartService{view: view}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Success bool             `json:"success"`
		Data    cartsvc.CartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if envelope.Data.Summary.TotalPriceDisplay != "Rs. 2,200.00" {
		t.Fatalf("unexpected display total: %s", envelope.Data.Summary.TotalPriceDisplay)
	}
}

func TestCartViewRequiresAuthContext(t *testing.T) {
	handler := CartView(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartAddValidatesPayload(t *testing.T) {
	svc := &stubCartService{item: &cartsvc.CartItemDTO{}}
	handler := CartAdd(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/add", `{"product_id":"`+uuid.NewString()+`","quantity":0}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.addCalls) != 0 {
		t.Fatal("expected service untouched on invalid payload")
	}
}

func TestCartAddSuccess(t *testing.T) {
	svc := &stubCartService{item: &cartsvc.CartItemDTO{Quantity: 2}}
	handler := CartAdd(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/v1/cart/add", `{"product_id":"`+uuid.NewString()+`","quantity":2}`))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if len(svc.addCalls) != 1 || svc.addCalls[0] != 2 {
		t.Fatalf("expected one add call with qty 2, got %v", svc.addCalls)
	}
}

func TestCartUpdateNotFound(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")}
	handler := CartUpdate(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/v1/cart/update", `{"item_id":"`+uuid.NewString()+`","quantity":4}`))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartRemoveRequiresItemID(t *testing.T) {
	handler := CartRemove(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart/remove", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartRemoveSuccess(t *testing.T) {
	handler := CartRemove(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart/remove?item_id="+uuid.NewString(), ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartClearReportsCount(t *testing.T) {
	handler := CartClear(&stubCartService{cleared: 3}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodDelete, "/api/v1/cart/clear", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["removed"] != 3 {
		t.Fatalf("expected 3 removed, got %d", envelope.Data["removed"])
	}
}

func TestCartCount(t *testing.T) {
	handler := CartCount(&stubCartService{count: 7}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/v1/cart/count", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["count"] != 7 {
		t.Fatalf("expected count 7, got %d", envelope.Data["count"])
	}
}
