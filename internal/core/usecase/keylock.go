package usecase

import "sync"

// sessionLocks serializes turns on the same session key without blocking
// turns on other sessions. Entries are reference-counted and removed once
// the last holder releases, so the map does not grow with session count.
type sessionLocks struct {
	mu   sync.Mutex
	held map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{held: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(key string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.held[key]
	if !ok {
		entry = &sessionLock{}
		l.held[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.held, key)
		}
		l.mu.Unlock()
	}
}
