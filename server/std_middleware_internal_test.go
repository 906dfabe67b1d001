package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	t.Run("remote addr", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "198.51.100.9:4242"
		require.Equal(t, "198.51.100.9", clientIP(r))
	})

	t.Run("forwarded single hop", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7")
		require.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("forwarded proxy chain uses first element", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
		require.Equal(t, "203.0.113.7", clientIP(r))
	})
}
