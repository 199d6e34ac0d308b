package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePayload_BareToken(t *testing.T) {
	enc := NewEncoder("")
	assert.Equal(t, "abc123", enc.EncodePayload("abc123"))
}

func TestEncodePayload_WithBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"plain", "https://gate.example.com", "https://gate.example.com/checkin?token=abc123"},
		{"trailing slash", "https://gate.example.com/", "https://gate.example.com/checkin?token=abc123"},
		{"double trailing slash", "https://gate.example.com//", "https://gate.example.com/checkin?token=abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := NewEncoder(tt.baseURL)
			assert.Equal(t, tt.want, enc.EncodePayload("abc123"))
		})
	}
}

func TestEncodePayload_Pure(t *testing.T) {
	enc := NewEncoder("https://gate.example.com")
	first := enc.EncodePayload("deadbeef")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, enc.EncodePayload("deadbeef"), "payload changed between calls")
	}
}

func TestRenderPNG_Deterministic(t *testing.T) {
	enc := NewEncoder("")
	first, err := enc.RenderPNG("some-token-payload")
	require.NoError(t, err)
	second, err := enc.RenderPNG("some-token-payload")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same payload must yield byte-identical PNG output")
}

func TestRenderPNG_IsPNG(t *testing.T) {
	enc := NewEncoder("")
	png, err := enc.RenderPNG("some-token-payload")
	require.NoError(t, err)
	magic := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	require.GreaterOrEqual(t, len(png), len(magic))
	assert.Equal(t, magic, png[:len(magic)], "output is not a PNG")
}
