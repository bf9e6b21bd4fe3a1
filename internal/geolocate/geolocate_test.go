package geolocate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestLocateSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":34.0522,"lon":-118.2437,"city":"Los Angeles","country":"United States","query":"203.0.113.9"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	f, err := c.Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, orb.Point{-118.2437, 34.0522}, f.Geometry)
	require.Equal(t, "Los Angeles", f.Properties["city"])
	require.Equal(t, "United States", f.Properties["country"])
	require.Equal(t, "203.0.113.9", f.Properties["ip"])
}

func TestLocateOmitsEmptyProperties(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":1,"lon":2}`))
	}))
	defer srv.Close()

	f, err := NewClient(srv.URL, time.Second).Locate(context.Background())
	require.NoError(t, err)
	require.Empty(t, f.Properties)
}

func TestLocateServiceRefusal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Locate(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Contains(t, err.Error(), "private range")
}

func TestLocateBadStatusCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Locate(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLocateBadJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Locate(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLocateUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(srv.URL, time.Second).Locate(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
