package mirror

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrStale is returned for a response that a newer load of the same key has superseded.
var ErrStale = errors.New("stale response discarded")

// Ticket identifies one load.
type Ticket struct {
	key string
	seq uint64
}

// Guard discards superseded responses: every load takes a ticket, and only the latest ticket of a key
// may commit its result.
type Guard struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewGuard() *Guard {
	return &Guard{latest: make(map[string]uint64)}
}

func (g *Guard) Begin(key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return Ticket{key: key, seq: g.latest[key]}
}

func (g *Guard) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[t.key] == t.seq
}

// Commit runs apply when t is still the latest ticket of its key, holding the guard so that no newer
// ticket can be taken in between. Otherwise it returns ErrStale.
func (g *Guard) Commit(t Ticket, apply func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[t.key] != t.seq {
		return ErrStale
	}
	apply()
	return nil
}
