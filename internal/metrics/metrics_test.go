package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestObserveTransition(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition(enum.ReceiptStateUnpaid, enum.ReceiptStatePaid)
	m.ObserveTransition(enum.ReceiptStateUnpaid, enum.ReceiptStatePaid)
	m.ObserveRejected(enum.ReceiptStateUnpaid, enum.ReceiptStateApproved)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("UNPAID", "PAID")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("UNPAID", "APPROVED")))
}

func TestMiddlewareRecordsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/receipts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/receipts/abc", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2, testutil.CollectAndCount(m.requests))
}
