package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(Config{BaseURL: url, UserAgent: "arena-test", Timeout: time.Second, RequestsPerSecond: 1000})
}

func TestGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "LoL Park, Seoul", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "arena-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[{"lat":"37.5704","lon":"126.9831","display_name":"LoL Park"}]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL).Geocode(context.Background(), "LoL Park, Seoul")
	require.NoError(t, err)
	assert.InDelta(t, 37.5704, res.Latitude, 1e-9)
	assert.InDelta(t, 126.9831, res.Longitude, 1e-9)
	assert.Equal(t, "LoL Park", res.DisplayName)
}

func TestGeocode_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestGeocode_EmptyAddress(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:0").Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestGeocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Geocode(context.Background(), "Seoul")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGeocode_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 5; i++ {
		_, err := c.Geocode(context.Background(), "Seoul")
		require.ErrorIs(t, err, ErrUnavailable)
	}

	_, err := c.Geocode(context.Background(), "Seoul")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 5, calls, "open breaker must not reach the server")
}

func TestGeocode_NoResultDoesNotTripBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	for i := 0; i < 6; i++ {
		_, err := c.Geocode(context.Background(), "nowhere")
		require.ErrorIs(t, err, ErrNoResult)
	}
}
