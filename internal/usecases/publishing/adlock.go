package publishing

import "sync"

// adLocker serializa publicações concorrentes do mesmo anúncio dentro do
// processo. Locks são criados sob demanda por anúncio e descartados quando o
// último interessado libera, para o mapa não crescer com o catálogo.
type adLocker struct {
	mu    sync.Mutex
	locks map[string]*adLockEntry
}

type adLockEntry struct {
	mu   sync.Mutex
	refs int
}

func newAdLocker() *adLocker {
	return &adLocker{
		locks: make(map[string]*adLockEntry),
	}
}

func (l *adLocker) Lock(adID string) {
	l.mu.Lock()
	entry, ok := l.locks[adID]
	if !ok {
		entry = &adLockEntry{}
		l.locks[adID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *adLocker) Unlock(adID string) {
	l.mu.Lock()
	entry, ok := l.locks[adID]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, adID)
		}
	}
	l.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
