package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_StringAndParseRoundTrip(t *testing.T) {
	for _, r := range All {
		parsed, err := Parse(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
}

func TestParse_InvalidName(t *testing.T) {
	_, err := Parse("Not-A-Role")
	assert.Error(t, err)
}

func TestLess_OrdersByOrdinal(t *testing.T) {
	assert.True(t, Less(Duke, Assassin))
	assert.False(t, Less(Contessa, Duke))
}

func TestAll_HasFiveDistinctRoles(t *testing.T) {
	seen := make(map[Role]bool)
	for _, r := range All {
		seen[r] = true
	}
	assert.Len(t, seen, 5)
}
