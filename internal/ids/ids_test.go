package ids

import (
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	g := UUID{}
	a, b := g.NewID(), g.NewID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestTimestamp_StrictlyIncreasingWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	g := &Timestamp{now: func() time.Time { return fixed }}

	first := g.NewID()
	second := g.NewID()
	third := g.NewID()

	assert.Equal(t, "1700000000000", first)
	assert.Equal(t, "1700000000001", second)
	assert.Equal(t, "1700000000002", third)
}

func TestTimestamp_UsesClock(t *testing.T) {
	g := NewTimestamp()
	before := time.Now().UnixMilli()

	id, err := strconv.ParseInt(g.NewID(), 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, id, before)
}

func TestNew(t *testing.T) {
	g, err := New("uuid")
	require.NoError(t, err)
	assert.IsType(t, UUID{}, g)

	g, err = New("timestamp")
	require.NoError(t, err)
	assert.IsType(t, &Timestamp{}, g)

	_, err = New("sequence")
	assert.Error(t, err)
}
