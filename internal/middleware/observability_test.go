package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestRequestLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req, _ := http.NewRequest("GET", "/test?scheme=dark", nil)
	req.Header.Set("User-Agent", "TestAgent/1.0")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("RequestLogger() status = %v, want %v", w.Code, http.StatusOK)
	}
}

func TestRequestLogger_DifferentStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"Created", http.StatusCreated},
		{"Unauthorized", http.StatusUnauthorized},
		{"Too Many Requests", http.StatusTooManyRequests},
		{"Internal Server Error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestLogger())
			router.GET("/test", func(c *gin.Context) {
				c.Status(tt.statusCode)
			})

			req, _ := http.NewRequest("GET", "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.statusCode {
				t.Errorf("RequestLogger() status = %v, want %v", w.Code, tt.statusCode)
			}
		})
	}
}

func TestRequestTracker(t *testing.T) {
	router := gin.New()
	router.Use(RequestTracker())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("RequestTracker() status = %v, want %v", w.Code, http.StatusNoContent)
	}
}

func TestRequestID_Generated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())

	var fromContext string
	router.GET("/test", func(c *gin.Context) {
		fromContext = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get("X-Request-ID")
	if header == "" {
		t.Fatal("RequestID() did not set X-Request-ID")
	}
	if _, err := uuid.Parse(header); err != nil {
		t.Errorf("RequestID() generated %q, want a UUID", header)
	}
	if fromContext != header {
		t.Errorf("request_id in context = %q, want %q", fromContext, header)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "upstream-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "upstream-123" {
		t.Errorf("RequestID() header = %q, want %q", got, "upstream-123")
	}
}

func TestRouteLabel(t *testing.T) {
	router := gin.New()

	var matched string
	router.GET("/v1/profile/quick-add/:field", func(c *gin.Context) {
		matched = routeLabel(c)
		c.Status(http.StatusOK)
	})

	var unmatched string
	router.NoRoute(func(c *gin.Context) {
		unmatched = routeLabel(c)
		c.Status(http.StatusNotFound)
	})

	for _, path := range []string{"/v1/profile/quick-add/payment", "/nope"} {
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	if matched != "/v1/profile/quick-add/:field" {
		t.Errorf("routeLabel() = %q, want the route pattern", matched)
	}
	if unmatched != "unmatched" {
		t.Errorf("routeLabel() = %q, want %q", unmatched, "unmatched")
	}
}
