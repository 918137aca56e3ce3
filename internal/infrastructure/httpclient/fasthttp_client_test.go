package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestJSONClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"bitcoin","rank":1}`))
	}))
	defer srv.Close()

	c := NewJSONClient(Options{
		Source:  "test",
		Timeout: time.Second,
		Headers: map[string]string{"Authorization": "Bearer secret"},
	}, zap.NewNop())

	var out struct {
		Name string `json:"name"`
		Rank int    `json:"rank"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &out))
	assert.Equal(t, "bitcoin", out.Name)
	assert.Equal(t, 1, out.Rank)
}

func TestJSONClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	c := NewJSONClient(Options{Source: "test"}, zap.NewNop())
	var out map[string]any
	err := c.GetJSON(context.Background(), srv.URL, &out)

	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
}

func TestJSONClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewJSONClient(Options{Source: "test"}, zap.NewNop())
	var out map[string]any
	assert.Error(t, c.GetJSON(context.Background(), srv.URL, &out))
}

func TestJSONClient_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewJSONClient(Options{Source: "test", Timeout: 5 * time.Second}, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out map[string]any
	assert.Error(t, c.GetJSON(ctx, srv.URL, &out))
}
