package provider

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/fxcalc/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newProvider(url string) *RateAPIProvider {
	return NewRateAPIProvider(config.RateAPI{
		URL:          url,
		BaseCurrency: "USD",
		HTTPTimeout:  2 * time.Second,
	}, discardLogger())
}

func TestFetchLatest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","date":"2025-01-02","rates":{"EUR":0.9,"KRW":1300}}`))
	}))
	defer srv.Close()

	snap, err := newProvider(srv.URL).FetchLatest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "USD", snap.Base)
	assert.Equal(t, "2025-01-02", snap.Date)
	assert.Equal(t, 1300.0, snap.Rates["KRW"])
	assert.Equal(t, 1.0, snap.Rates["USD"], "identity rate merged for the base")
	assert.WithinDuration(t, time.Now(), snap.CachedAt, time.Second)
}

func TestFetchLatest_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).FetchLatest(context.Background())
	assert.ErrorContains(t, err, "status 502")
}

func TestFetchLatest_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates": not-json`))
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).FetchLatest(context.Background())
	assert.ErrorContains(t, err, "decode")
}

func TestFetchLatest_EmptyRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"base":"USD","date":"2025-01-02","rates":{}}`))
	}))
	defer srv.Close()

	_, err := newProvider(srv.URL).FetchLatest(context.Background())
	assert.ErrorContains(t, err, "no rates")
}

func TestFetchLatest_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newProvider(srv.URL).FetchLatest(ctx)
	assert.Error(t, err)
}
