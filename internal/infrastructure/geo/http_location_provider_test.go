package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPLocationProvider_Acquire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/position", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"lat":30.0444,"lng":31.2357}`))
	}))
	defer srv.Close()

	provider := NewHTTPLocationProvider(srv.URL, nil)

	coords, err := provider.Acquire(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 30.0444, coords.Lat)
	assert.Equal(t, 31.2357, coords.Lng)
}

func TestHTTPLocationProvider_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	provider := NewHTTPLocationProvider(srv.URL, nil)

	_, err := provider.Acquire(context.Background())

	assert.Error(t, err)
}

func TestHTTPLocationProvider_RespectsDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	provider := NewHTTPLocationProvider(srv.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := provider.Acquire(ctx)

	assert.Error(t, err)
}
