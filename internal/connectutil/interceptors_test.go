package connectutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewLoggingInterceptor(t *testing.T) {
	if NewLoggingInterceptor() == nil {
		t.Fatal("expected non-nil interceptor")
	}
}

func TestDefaultOptions(t *testing.T) {
	if len(DefaultOptions()) == 0 {
		t.Fatal("expected non-empty options")
	}
	if len(DefaultClientOptions()) == 0 {
		t.Fatal("expected non-empty client options")
	}
}

func TestH2CHandlerServesHTTP1(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	H2CHandler(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}
