package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRequestTiming_SetsStartTime(t *testing.T) {
	router := gin.New()
	router.Use(RequestTiming())

	var startTime time.Time
	router.GET("/test", func(c *gin.Context) {
		val, exists := c.Get("request_start_time")
		if !exists {
			t.Error("request_start_time not set in context")
		}
		startTime, _ = val.(time.Time)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequestTiming() status = %v, want %v", w.Code, http.StatusOK)
	}
	if startTime.IsZero() {
		t.Error("request_start_time was not set")
	}
}

func TestRequestTiming_RecordsSpan(t *testing.T) {
	recorder := withRecorder(t)

	router := gin.New()
	router.Use(RequestID(), RequestTiming())
	router.GET("/v1/profile", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/v1/profile", nil)
	req.Header.Set("X-Request-ID", "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "http.request" {
		t.Errorf("span name = %q, want %q", span.Name(), "http.request")
	}
	if v, ok := spanAttr(span, "http.status_code"); !ok || v.AsInt64() != http.StatusOK {
		t.Errorf("http.status_code = %v, want %d", v.Emit(), http.StatusOK)
	}
	if v, _ := spanAttr(span, "http.request_id"); v.AsString() != "req-1" {
		t.Errorf("http.request_id = %q, want %q", v.AsString(), "req-1")
	}
	if v, _ := spanAttr(span, "enduser.id"); v.AsString() != "user-1" {
		t.Errorf("enduser.id = %q, want %q", v.AsString(), "user-1")
	}
	if span.Status().Code == codes.Error {
		t.Error("successful request marked as error")
	}
}

func TestRequestTiming_ServerError(t *testing.T) {
	recorder := withRecorder(t)

	router := gin.New()
	router.Use(RequestTiming())
	router.GET("/error", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	req, _ := http.NewRequest("GET", "/error", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", spans[0].Status().Code)
	}
	if v, _ := spanAttr(spans[0], "http.error"); v.AsString() != "true" {
		t.Error("http.error attribute not set")
	}
}

func TestRequestTiming_ClientErrorIsNotSpanError(t *testing.T) {
	recorder := withRecorder(t)

	router := gin.New()
	router.Use(RequestTiming())
	router.POST("/v1/auth/sign-in", func(c *gin.Context) {
		c.Status(http.StatusUnauthorized)
	})

	req, _ := http.NewRequest("POST", "/v1/auth/sign-in", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("4xx response marked the span as error")
	}
}
