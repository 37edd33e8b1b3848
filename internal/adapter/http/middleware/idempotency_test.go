package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mock_interfaces "order_management/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newIdempotentRouter(store *mock_interfaces.MockIIdempotencyStore, status int, calls *int) *gin.Engine {
	r := gin.New()
	r.POST("/v1/payments", Idempotency(store, "payments"), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"id": "pay-1"})
	})
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/payments", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no key passes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		w := postWithKey(newIdempotentRouter(store, http.StatusCreated, &calls), "")
		if w.Code != http.StatusCreated || calls != 1 {
			t.Fatalf("expected handler to run once with 201, got %d calls=%d", w.Code, calls)
		}
	})

	t.Run("first request is remembered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		var remembered string
		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return("", false, nil)
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-1").Return(true, nil)
		store.EXPECT().Remember(gomock.Any(), "payments", "k-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, value string) error {
				remembered = value
				return nil
			})

		w := postWithKey(newIdempotentRouter(store, http.StatusCreated, &calls), "k-1")
		if w.Code != http.StatusCreated || calls != 1 {
			t.Fatalf("expected 201 from handler, got %d calls=%d", w.Code, calls)
		}

		var stored storedResponse
		if err := json.Unmarshal([]byte(remembered), &stored); err != nil {
			t.Fatalf("remembered value is not a stored response: %v", err)
		}
		if stored.Status != http.StatusCreated || stored.Body != `{"id":"pay-1"}` {
			t.Fatalf("unexpected stored response: %+v", stored)
		}
	})

	t.Run("replay skips the handler", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		raw, _ := json.Marshal(storedResponse{Status: http.StatusCreated, ContentType: "application/json; charset=utf-8", Body: `{"id":"pay-1"}`})
		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return(string(raw), true, nil)

		w := postWithKey(newIdempotentRouter(store, http.StatusCreated, &calls), "k-1")
		if calls != 0 {
			t.Fatalf("handler must not run on replay, ran %d times", calls)
		}
		if w.Code != http.StatusCreated || w.Body.String() != `{"id":"pay-1"}` {
			t.Fatalf("unexpected replay: %d %s", w.Code, w.Body.String())
		}
		if w.Header().Get(HeaderReplayed) != "true" {
			t.Fatalf("expected %s header", HeaderReplayed)
		}
	})

	t.Run("key in flight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return("", false, nil).Times(2)
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-1").Return(false, nil)

		w := postWithKey(newIdempotentRouter(store, http.StatusCreated, &calls), "k-1")
		if w.Code != http.StatusConflict || calls != 0 {
			t.Fatalf("expected 409 without running handler, got %d calls=%d", w.Code, calls)
		}
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return("", false, nil)
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-1").Return(true, nil)
		store.EXPECT().Release(gomock.Any(), "payments", "k-1").Return(nil)

		w := postWithKey(newIdempotentRouter(store, http.StatusConflict, &calls), "k-1")
		if w.Code != http.StatusConflict || calls != 1 {
			t.Fatalf("expected handler 409, got %d calls=%d", w.Code, calls)
		}
	})

	t.Run("store outage fails open", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)
		calls := 0

		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return("", false, errors.New("connection refused"))
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-1").Return(false, errors.New("connection refused"))

		w := postWithKey(newIdempotentRouter(store, http.StatusCreated, &calls), "k-1")
		if w.Code != http.StatusCreated || calls != 1 {
			t.Fatalf("expected handler to run, got %d calls=%d", w.Code, calls)
		}
	})

	t.Run("timed out request still releases the key", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)

		var releaseErr error
		store.EXPECT().Recall(gomock.Any(), "payments", "k-1").Return("", false, nil)
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-1").Return(true, nil)
		store.EXPECT().Release(gomock.Any(), "payments", "k-1").
			DoAndReturn(func(ctx context.Context, _, _ string) error {
				releaseErr = ctx.Err()
				return releaseErr
			})

		r := gin.New()
		r.Use(RequestTimeout(10 * time.Millisecond))
		r.POST("/v1/payments", Idempotency(store, "payments"), func(c *gin.Context) {
			<-c.Request.Context().Done()
			c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL_ERROR"})
		})

		w := postWithKey(r, "k-1")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 from handler, got %d", w.Code)
		}
		if releaseErr != nil {
			t.Fatalf("release ran on a dead context: %v", releaseErr)
		}
	})

	t.Run("slow success is still remembered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		store := mock_interfaces.NewMockIIdempotencyStore(ctrl)

		var rememberErr error
		store.EXPECT().Recall(gomock.Any(), "payments", "k-2").Return("", false, nil)
		store.EXPECT().TryLock(gomock.Any(), "payments", "k-2").Return(true, nil)
		store.EXPECT().Remember(gomock.Any(), "payments", "k-2", gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _, _ string) error {
				rememberErr = ctx.Err()
				return rememberErr
			})

		r := gin.New()
		r.Use(RequestTimeout(10 * time.Millisecond))
		r.POST("/v1/payments", Idempotency(store, "payments"), func(c *gin.Context) {
			<-c.Request.Context().Done()
			c.JSON(http.StatusCreated, gin.H{"id": "pay-1"})
		})

		w := postWithKey(r, "k-2")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 from handler, got %d", w.Code)
		}
		if rememberErr != nil {
			t.Fatalf("remember ran on a dead context: %v", rememberErr)
		}
	})
}
