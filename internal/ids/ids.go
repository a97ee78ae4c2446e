// Package ids generates record identifiers.
package ids

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator returns a new identifier on every call.
type Generator interface {
	NewID() string
}

// UUID generates random version 4 UUIDs.
type UUID struct{}

func (UUID) NewID() string {
	return uuid.NewString()
}

// Timestamp generates millisecond Unix timestamps as decimal strings, the
// format the mobile app used. Ids are strictly increasing: when two calls land
// in the same millisecond the second one is bumped forward.
type Timestamp struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewTimestamp() *Timestamp {
	return &Timestamp{now: time.Now}
}

func (g *Timestamp) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// New returns the generator for the named strategy ("uuid" or "timestamp").
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", "uuid":
		return UUID{}, nil
	case "timestamp":
		return NewTimestamp(), nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
