package passcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate_AlwaysFiveDigitsInRange(t *testing.T) {
	for i := 0; i < 10000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, Length)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 10000)
		require.LessOrEqual(t, n, 99999)
	}
}

func TestGenerate_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		seen[code] = true
	}
	// 100 draws from 90000 values collapsing to one would mean a broken source.
	require.Greater(t, len(seen), 1)
}
