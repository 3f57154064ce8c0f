package monitoring

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection. Requests are
// labelled with the matched route template so ids in paths do not explode
// the label space.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())
		if respSize < 0 {
			respSize = 0
		}

		metrics.RecordHTTPRequest(method, path, status, time.Since(start), reqSize, respSize)
	}
}

// Timer measures operation duration
type Timer struct {
	start   time.Time
	metrics *Metrics
	service string
	method  string
}

// NewTimer creates a new timer
func NewTimer(metrics *Metrics, service, method string) *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: metrics,
		service: service,
		method:  method,
	}
}

// Stop stops the timer and records the duration
func (t *Timer) Stop(status string) {
	if t.metrics == nil {
		return
	}
	t.metrics.RecordServiceCall(t.service, t.method, status, time.Since(t.start))
}

// Done records the call outcome from err. Errors are also counted under
// their kind, as named by classify.
func (t *Timer) Done(err error, classify func(error) string) {
	if t.metrics == nil {
		return
	}
	if err == nil {
		t.Stop("success")
		return
	}
	t.Stop("error")
	kind := "internal"
	if classify != nil {
		kind = classify(err)
	}
	t.metrics.RecordServiceError(t.service, t.method, kind)
}

// ErrorKind names err by the first sentinel in kinds it wraps, or
// "internal".
func ErrorKind(err error, kinds map[string]error) string {
	for name, sentinel := range kinds {
		if errors.Is(err, sentinel) {
			return name
		}
	}
	return "internal"
}
