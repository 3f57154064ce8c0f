package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.True(t, strings.HasPrefix(string(root.TraceID), "req_"))
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
	assert.Empty(t, root.ParentID)
}

func TestSetErrorMarksServerError(t *testing.T) {
	span := &Span{Tags: map[string]string{}}
	span.SetStatus(404)
	span.SetError(errors.New("boom"))
	assert.Equal(t, 500, span.StatusCode)
}

func TestCloseFlushesSpans(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	tracer := New("test", zap.New(core))

	span, _ := tracer.StartSpan(context.Background(), "op")
	span.Finish()
	tracer.Submit(span)
	tracer.Close()

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("span completed").Len() == 1
	}, time.Second, 5*time.Millisecond)

	tracer.Submit(span)
	tracer.Close()
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := New("test", nil)
	defer tracer.Close()

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/api/windows", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	t.Run("new trace", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/windows", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
		assert.Equal(t, string(seen), w.Header().Get(HeaderTraceID))
	})

	t.Run("propagated trace", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/windows", nil)
		req.Header.Set(HeaderTraceID, "req_upstream")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req_upstream", w.Header().Get(HeaderTraceID))
		assert.Equal(t, TraceID("req_upstream"), seen)
	})
}

func TestFields(t *testing.T) {
	assert.Nil(t, Fields(context.Background()))

	ctx := WithTrace(context.Background(), "req_1", "span_1")
	assert.Len(t, Fields(ctx), 2)
}
