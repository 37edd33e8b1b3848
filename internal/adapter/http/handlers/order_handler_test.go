package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order_management/internal/adapter/http/handlers/mocks"
	"order_management/internal/domain/entities"
	"order_management/internal/usecase"
	"order_management/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) pkg.HTTPError {
	t.Helper()
	var body pkg.HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func sampleDetails() usecase.OrderDetails {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return usecase.OrderDetails{
		Order: entities.Order{
			ID:         "o-1",
			CustomerID: "c-1",
			Status:     entities.OrderStatusNew,
			TotalCents: 539000,
			Lines: []entities.OrderLine{
				{ProductID: "p-1", ProductName: "Notebook Gamer", Quantity: 1, UnitPriceCents: 500000},
				{ProductID: "p-2", ProductName: "Headset Surround", Quantity: 1, UnitPriceCents: 35000},
				{ProductID: "p-3", ProductName: "Cabo HDMI 2m", Quantity: 2, UnitPriceCents: 2000},
			},
			PaymentIDs: []string{},
			CreatedAt:  now,
			UpdatedAt:  now,
			Version:    1,
		},
		Customer: entities.Customer{ID: "c-1", Name: "Joao Froes", Email: "joao@teste.com"},
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIOrderUseCase) *gin.Engine {
		r := gin.New()
		r.POST("/v1/orders", NewOrderHandler(uc).CreateOrder)
		return r
	}

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPost, "/v1/orders", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_REQUEST" {
			t.Fatalf("expected INVALID_REQUEST, got %s", body.Code)
		}
	})

	t.Run("per-field validation messages", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPost, "/v1/orders", `{"items":[{"product_id":"p-1","quantity":-1}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		body := decodeError(t, w)
		if body.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected VALIDATION_ERROR, got %s", body.Code)
		}
		if body.Fields["customer_id"] != "is required" {
			t.Fatalf("expected customer_id message, got %+v", body.Fields)
		}
		if body.Fields["items[0].quantity"] != "must be at least 1" {
			t.Fatalf("expected quantity message, got %+v", body.Fields)
		}
	})

	t.Run("empty item list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPost, "/v1/orders", `{"customer_id":"c-1","items":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Fields["items"] == "" {
			t.Fatalf("expected items message, got %+v", body.Fields)
		}
	})

	t.Run("mapped errors", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
			code   string
		}{
			{fmt.Errorf("%w: p-9", usecase.ErrProductNotFound), http.StatusNotFound, "PRODUCT_NOT_FOUND"},
			{fmt.Errorf("%w: c-9", usecase.ErrCustomerNotFound), http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
			{fmt.Errorf("%w: p-7", usecase.ErrProductInactive), http.StatusBadRequest, "PRODUCT_INACTIVE"},
			{usecase.ErrInvalidQuantity, http.StatusBadRequest, "VALIDATION_ERROR"},
			{usecase.ErrOrderTotalOverflow, http.StatusBadRequest, "VALIDATION_ERROR"},
			{errors.New("dynamo down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockIOrderUseCase(ctrl)
			uc.EXPECT().Create(gomock.Any(), "c-1", []usecase.OrderItemInput{{ProductID: "p-1", Quantity: 1}}).Return(usecase.OrderDetails{}, tc.err)

			w := doJSON(newRouter(uc), http.MethodPost, "/v1/orders", `{"customer_id":"c-1","items":[{"product_id":"p-1","quantity":1}]}`)
			if w.Code != tc.status {
				t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
			}
			if body := decodeError(t, w); body.Code != tc.code {
				t.Fatalf("%v: expected %s, got %s", tc.err, tc.code, body.Code)
			}
			ctrl.Finish()
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		items := []usecase.OrderItemInput{
			{ProductID: "p-1", Quantity: 1},
			{ProductID: "p-2", Quantity: 1},
			{ProductID: "p-3", Quantity: 2},
		}
		uc.EXPECT().Create(gomock.Any(), "c-1", items).Return(sampleDetails(), nil)

		w := doJSON(newRouter(uc), http.MethodPost, "/v1/orders",
			`{"customer_id":"c-1","items":[{"product_id":"p-1","quantity":1},{"product_id":"p-2","quantity":1},{"product_id":"p-3","quantity":2}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["total_cents"].(float64) != 539000 || body["total_display"] != "5390.00" {
			t.Fatalf("unexpected totals: %+v", body)
		}
		if body["total_paid_cents"].(float64) != 0 || body["status"] != "NEW" {
			t.Fatalf("unexpected paid/status: %+v", body)
		}
		if body["customer_name"] != "Joao Froes" {
			t.Fatalf("unexpected customer: %+v", body)
		}
		if payments, ok := body["payments"].([]any); !ok || len(payments) != 0 {
			t.Fatalf("expected empty payments list, got %#v", body["payments"])
		}
	})
}

func TestOrderHandler_ListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := gin.New()
		r.GET("/v1/orders", NewOrderHandler(uc).ListOrders)

		uc.EXPECT().List(gomock.Any()).Return([]entities.Order{
			{ID: "o-2", Status: entities.OrderStatusPaid, TotalCents: 100},
			{ID: "o-1", Status: entities.OrderStatusNew, TotalCents: 200},
		}, nil)

		w := doJSON(r, http.MethodGet, "/v1/orders", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if len(body) != 2 || body[0]["id"] != "o-2" || body[1]["id"] != "o-1" {
			t.Fatalf("order of summaries must be preserved: %+v", body)
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := gin.New()
		r.GET("/v1/orders/:id", NewOrderHandler(uc).GetOrder)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(usecase.OrderDetails{}, usecase.ErrOrderNotFound)

		w := doJSON(r, http.MethodGet, "/v1/orders/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "ORDER_NOT_FOUND" {
			t.Fatalf("expected ORDER_NOT_FOUND, got %s", body.Code)
		}
	})

	t.Run("get success with payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		r := gin.New()
		r.GET("/v1/orders/:id", NewOrderHandler(uc).GetOrder)

		d := sampleDetails()
		d.Payments = []entities.Payment{
			{ID: "pay-1", OrderID: "o-1", Method: entities.PaymentMethodPix, AmountCents: 300000},
			{ID: "pay-2", OrderID: "o-1", Method: entities.PaymentMethodCard, AmountCents: 239000},
		}
		d.Order.Status = entities.OrderStatusPaid
		uc.EXPECT().GetByID(gomock.Any(), "o-1").Return(d, nil)

		w := doJSON(r, http.MethodGet, "/v1/orders/o-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["total_paid_cents"].(float64) != 539000 || body["status"] != "PAID" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIOrderUseCase) *gin.Engine {
		r := gin.New()
		r.PATCH("/v1/orders/:id", NewOrderHandler(uc).UpdateOrderStatus)
		return r
	}

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/orders/o-1", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Fields["status"] != "is required" {
			t.Fatalf("unexpected fields: %+v", body.Fields)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "o-1", "SHIPPED").Return(usecase.OrderDetails{}, fmt.Errorf("%w: %q", usecase.ErrInvalidOrderStatus, "SHIPPED"))

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/orders/o-1", `{"status":"SHIPPED"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("terminal status conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "o-1", "CANCELLED").Return(usecase.OrderDetails{}, fmt.Errorf("%w: PAID -> CANCELLED", usecase.ErrInvalidStatusTransition))

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/orders/o-1", `{"status":"CANCELLED"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if body := decodeError(t, w); body.Code != "INVALID_STATUS_TRANSITION" {
			t.Fatalf("expected INVALID_STATUS_TRANSITION, got %s", body.Code)
		}
	})

	t.Run("concurrent update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "o-1", "CANCELLED").Return(usecase.OrderDetails{}, usecase.ErrConcurrentUpdate)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/orders/o-1", `{"status":"CANCELLED"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("cancel", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)

		d := sampleDetails()
		d.Order.Status = entities.OrderStatusCancelled
		d.Order.Version = 2
		uc.EXPECT().UpdateStatus(gomock.Any(), "o-1", "cancelled").Return(d, nil)

		w := doJSON(newRouter(uc), http.MethodPatch, "/v1/orders/o-1", `{"status":"cancelled"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "CANCELLED" || body["version"].(float64) != 2 {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}
