package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reinvik/nexus-lean-sub000/internal/app/client/config"
)

func newTestGateway(t *testing.T, handler http.Handler) *httpGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		RequestTimeout: 5,
		ListTimeout:    30,
	}
	return NewHTTPGateway(cfg, testLogger())
}

func TestGatewayBearerToken(t *testing.T) {
	var mu sync.Mutex
	var lastAuth string
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()
		fmt.Fprint(w, `{"cards":[]}`)
	}))

	_, err := gateway.ListCards(context.Background(), "")
	require.NoError(t, err)
	mu.Lock()
	assert.Empty(t, lastAuth)
	mu.Unlock()

	gateway.SetToken("session-token")
	_, err = gateway.ListCards(context.Background(), "")
	require.NoError(t, err)
	mu.Lock()
	assert.Equal(t, "Bearer session-token", lastAuth)
	mu.Unlock()
}

// The token is rewritten from the CLI goroutine while the sync and watch
// goroutines issue requests; both sides must go through the lock.
func TestGatewayTokenConcurrentAccess(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"cards":[]}`)
	}))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				gateway.SetToken(fmt.Sprintf("token-%d-%d", n, j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				_, err := gateway.ListCards(context.Background(), "")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestGatewayParsesErrorDetail(t *testing.T) {
	gateway := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"detail":"validation failed: area is required"}`)
	}))

	_, err := gateway.ListCards(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "area is required")
}
