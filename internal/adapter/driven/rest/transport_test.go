package rest_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/crmclient/internal/adapter/driven/memory"
	"github.com/ericfisherdev/crmclient/internal/adapter/driven/rest"
	"github.com/ericfisherdev/crmclient/internal/domain/model"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	hc := rest.NewHTTPClient(rest.TransportConfig{Timeout: 3 * time.Second})

	assert.Equal(t, 3*time.Second, hc.Timeout)
	assert.Equal(t, http.DefaultTransport, hc.Transport)
}

func TestNewHTTPClient_CacheServesConditionalGet(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "max-age=60")
		_, _ = w.Write([]byte(`{"Token":"cached"}`))
	}))
	t.Cleanup(server.Close)

	hc := rest.NewHTTPClient(rest.TransportConfig{Cache: true, Base: server.Client().Transport})
	client, err := rest.NewClient(server.URL, memory.NewTokenStore(), rest.WithHTTPClient(hc))
	require.NoError(t, err)

	for range 3 {
		got, err := rest.Get[model.LoginResponse](context.Background(), client, "users")
		require.NoError(t, err)
		assert.Equal(t, "cached", got.Token)
	}

	assert.Equal(t, int32(1), hits.Load(), "fresh responses are served from cache")
}

func TestNewHTTPClient_RateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	// One request per minute: the first passes on the burst, the second must wait.
	hc := rest.NewHTTPClient(rest.TransportConfig{RateLimit: 1.0 / 60, Burst: 1, Base: server.Client().Transport})
	client, err := rest.NewClient(server.URL, memory.NewTokenStore(), rest.WithHTTPClient(hc))
	require.NoError(t, err)

	_, err = rest.Get[model.LoginResponse](context.Background(), client, "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = rest.Get[model.LoginResponse](ctx, client, "b")

	assert.ErrorIs(t, err, model.ErrTransportFailure)
	assert.Less(t, time.Since(start), 5*time.Second, "limiter must not block past the context deadline")
}
