package ledger

import "sync"

// Lanes serializes work per key. Everything that reads then writes a game's balance or
// holdings takes the game's lane first.
type Lanes struct {
	mu    sync.Mutex
	lanes map[string]*lane
}

type lane struct {
	mu   sync.Mutex
	refs int
}

func NewLanes() *Lanes {
	return &Lanes{lanes: make(map[string]*lane)}
}

// Lock blocks until key is free and returns its unlock function.
func (l *Lanes) Lock(key string) func() {
	l.mu.Lock()
	ln, ok := l.lanes[key]
	if !ok {
		ln = &lane{}
		l.lanes[key] = ln
	}
	ln.refs++
	l.mu.Unlock()

	ln.mu.Lock()
	return func() {
		ln.mu.Unlock()
		l.mu.Lock()
		ln.refs--
		if ln.refs == 0 {
			delete(l.lanes, key)
		}
		l.mu.Unlock()
	}
}

func (l *Lanes) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lanes)
}
