package server_test

import (
	"testing"
	"time"

	"github.com/stayware/go-property-server/server"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := server.NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow("10.0.0.1"))
	}
	require.False(t, rl.Allow("10.0.0.1"))
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := server.NewRateLimiter(1, time.Minute)

	require.True(t, rl.Allow("10.0.0.1"))
	require.False(t, rl.Allow("10.0.0.1"))
	require.True(t, rl.Allow("10.0.0.2"))
}
