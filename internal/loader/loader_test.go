package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_File(t *testing.T) {
	t.Run("reads_local_file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"id":1}]`), 0o644))

		raw, err := New(time.Second).Fetch(context.Background(), path)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1}]`, string(raw))
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := New(time.Second).Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
		assert.Error(t, err)
	})
}

func TestFetch_HTTP(t *testing.T) {
	t.Run("fetches_feed_bytes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Write([]byte(`[{"id":7}]`))
		}))
		defer srv.Close()

		raw, err := New(time.Second).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":7}]`, string(raw))
	})

	t.Run("non_200_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(time.Second).Fetch(context.Background(), srv.URL)
		assert.Error(t, err)
	})

	t.Run("context_cancelled", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := New(time.Second).Fetch(ctx, srv.URL)
		assert.Error(t, err)
	})
}
