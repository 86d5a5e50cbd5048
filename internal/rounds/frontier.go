package rounds

import (
	"slices"
	"sync"
)

// frontier is the deduplicating set of states at one search level. add is
// safe for concurrent use; the other methods are called between levels.
type frontier struct {
	mu     sync.Mutex
	states map[State]struct{}
}

func newFrontier() *frontier {
	return &frontier{states: make(map[State]struct{})}
}

func (f *frontier) add(s State) {
	f.mu.Lock()
	f.states[s] = struct{}{}
	f.mu.Unlock()
}

func (f *frontier) len() int {
	return len(f.states)
}

// sorted returns the states in canonical order so that expansion, and with it
// the sequence of oracle calls, is reproducible.
func (f *frontier) sorted() []State {
	out := make([]State, 0, len(f.states))
	for s := range f.states {
		out = append(out, s)
	}
	slices.SortFunc(out, Compare)
	return out
}
