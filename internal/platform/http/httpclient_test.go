package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		maxConnsPerHost int
		expectedPerHost int
	}{
		{"bulk concurrency", 4, 4},
		{"zero uses default", 0, http.DefaultMaxIdleConnsPerHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := NewHTTPClient(7*time.Second, tt.maxConnsPerHost)
			assert.Equal(t, 7*time.Second, client.Timeout)

			tr, ok := client.Transport.(*http.Transport)
			require.True(t, ok)
			assert.Equal(t, tt.expectedPerHost, tr.MaxIdleConnsPerHost)
			assert.Equal(t, 7*time.Second, tr.ResponseHeaderTimeout)
			assert.NotNil(t, tr.Proxy)
		})
	}
}
