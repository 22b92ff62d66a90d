package random

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSeed(t *testing.T) {
	seen := make(map[int64]struct{})
	for i := 0; i < 8; i++ {
		s, err := NewSeed()
		require.NoError(t, err)
		seen[s] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
