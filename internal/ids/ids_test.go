package ids

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_Deterministic(t *testing.T) {
	a := NewSequence("tip-")
	b := NewSequence("tip-")

	assert.Equal(t, "tip-1", a.Next())
	assert.Equal(t, "tip-2", a.Next())
	assert.Equal(t, "tip-1", b.Next(), "independent counters")
	assert.Equal(t, "tooltip-1", NewSequence("").Next())
}

func TestULID_Unique(t *testing.T) {
	gen := ULID()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Next()
		require.True(t, strings.HasPrefix(id, Prefix))
		_, err := ulid.ParseStrict(strings.ToUpper(strings.TrimPrefix(id, Prefix)))
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUUID_Format(t *testing.T) {
	id := UUID().Next()
	require.True(t, strings.HasPrefix(id, Prefix))
	_, err := uuid.Parse(strings.TrimPrefix(id, Prefix))
	assert.NoError(t, err)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "ulid", "UUID", "sequence", "seq"} {
		gen, err := ByName(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, gen.Next())
	}

	_, err := ByName("random")
	assert.Error(t, err)
}
