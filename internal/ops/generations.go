package ops

import "sync"

// generations hands out a monotonically increasing number per key so that a
// response can tell whether a newer request for the same key was issued
// after it started.
type generations struct {
	mu   sync.Mutex
	last map[string]uint64
}

func (g *generations) begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.last == nil {
		g.last = make(map[string]uint64)
	}
	g.last[key]++
	return g.last[key]
}

func (g *generations) current(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last[key] == gen
}
