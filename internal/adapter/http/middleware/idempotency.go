package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"order_management/internal/logging"
	"order_management/internal/usecase/interfaces"
	"order_management/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// settleTimeout bounds the Release/Remember calls made after the handler returns.
// They run detached from the request context, which may already be past its deadline.
const settleTimeout = 3 * time.Second

type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first successful response for a repeated Idempotency-Key within scope.
//
//   - no header, or no store: pass through
//   - stored response: replayed verbatim with Idempotent-Replayed: true
//   - key claimed by a request still running: 409
//   - handler answered non-2xx: key released so the client can retry
//
// Store failures fail open; the ledger's own guards still hold.
func Idempotency(store interfaces.IIdempotencyStore, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
		if store == nil || key == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		l := logging.From(c).With("scope", scope, "idempotency_key", key)

		if replay(c, store, scope, key) {
			return
		}

		locked, err := store.TryLock(ctx, scope, key)
		if err != nil {
			l.Warn("idempotency lock failed, continuing without it", "err", err)
			c.Next()
			return
		}
		if !locked {
			if replay(c, store, scope, key) {
				return
			}
			appErr := pkg.NewDomainErrorSimple("IDEMPOTENCY_KEY_IN_USE", "A request with this Idempotency-Key is still being processed", http.StatusConflict)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Next()

		settleCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
		defer cancel()

		status := cw.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			if err := store.Release(settleCtx, scope, key); err != nil {
				l.Warn("idempotency release failed", "err", err)
			}
			return
		}

		raw, err := json.Marshal(storedResponse{
			Status:      status,
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.String(),
		})
		if err == nil {
			err = store.Remember(settleCtx, scope, key, string(raw))
		}
		if err != nil {
			l.Warn("idempotency remember failed", "err", err)
		}
	}
}

func replay(c *gin.Context, store interfaces.IIdempotencyStore, scope, key string) bool {
	raw, ok, err := store.Recall(c.Request.Context(), scope, key)
	if err != nil || !ok {
		if err != nil {
			logging.From(c).Warn("idempotency recall failed", "scope", scope, "err", err)
		}
		return false
	}

	var stored storedResponse
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logging.From(c).Warn("idempotency record unreadable", "scope", scope, "err", err)
		return false
	}
	contentType := stored.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Header(HeaderReplayed, "true")
	c.Data(stored.Status, contentType, []byte(stored.Body))
	c.Abort()
	return true
}
