package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(wellFormedBlock))
	}))
	defer srv.Close()

	body, err := NewFetcher(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, wellFormedBlock, string(body))
}

func TestFetchSurfacesNon2xxAsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone away", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL).Fetch(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFetcher(srv.URL).Fetch(ctx)
	assert.Error(t, err)
}
