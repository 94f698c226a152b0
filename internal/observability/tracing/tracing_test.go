package tracing

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestSafeAttributes(t *testing.T) {
	attrs := SafeAttributes(
		attribute.String("http.route", "/api/:storeId/orders"),
		attribute.String("order.phone", "555-0100"),
		attribute.String("store.id", ""),
		attribute.Int("http.status_code", 200),
	)

	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("http.route"), attrs[0].Key)
	assert.Equal(t, attribute.Key("http.status_code"), attrs[1].Key)
}

func TestSafeError(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	err := SafeError(fmt.Errorf("delete billboard: %w", errors.New("pq: SELECT secret")))
	assert.EqualError(t, err, "delete billboard")
}

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.25, clampRatio(0.25))
	assert.Equal(t, 1.0, clampRatio(3))
}

func TestNewProviderWithoutExport(t *testing.T) {
	tp, err := NewProvider(nil, Config{SamplingRatio: 1}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.Same(t, tp, otel.GetTracerProvider())
}

func TestGinMiddlewareRecordsServerSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	r := gin.New()
	r.Use(GinMiddleware())
	r.DELETE("/api/:storeId/billboards/:billboardId", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.String(http.StatusInternalServerError, "Internal error")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/7/billboards/9", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HTTP DELETE /api/:storeId/billboards/:billboardId", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("store.id", "7"))
	assert.Len(t, spans[0].Events(), 1)
}

func TestWrapHTTPClientInjectsTraceparent(t *testing.T) {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	var traceparent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
	}))
	defer server.Close()

	resp, err := WrapHTTPClient(nil).Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.NotEmpty(t, traceparent)
}
