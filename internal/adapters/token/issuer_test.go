package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_Format(t *testing.T) {
	issuer := NewIssuer()
	for i := 0; i < 100; i++ {
		tok := issuer.Issue()
		assert.Regexp(t, `^[0-9a-f]{32}$`, tok)
	}
}

func TestIssuer_Unique(t *testing.T) {
	issuer := NewIssuer()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		tok := issuer.Issue()
		_, dup := seen[tok]
		require.False(t, dup, "duplicate token %q after %d issues", tok, i)
		seen[tok] = struct{}{}
	}
}
