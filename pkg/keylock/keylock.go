package keylock

import (
	"context"
	"sync"
)

// Locker hands out one mutex per key. Entries are dropped once no
// goroutine holds or waits for them.
type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

func New[K comparable]() *Locker[K] {
	return &Locker[K]{locks: make(map[K]*entry)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (l *Locker[K]) Lock(key K) (unlock func()) {
	unlock, _ = l.LockContext(context.Background(), key)
	return unlock
}

// LockContext is Lock that gives up with ctx.Err() once ctx is done.
func (l *Locker[K]) LockContext(ctx context.Context, key K) (unlock func(), err error) {
	e := l.acquire(key)
	if err := ctx.Err(); err != nil {
		l.release(key, e)
		return nil, err
	}
	select {
	case e.sem <- struct{}{}:
		return func() {
			<-e.sem
			l.release(key, e)
		}, nil
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}
}

func (l *Locker[K]) acquire(key K) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker[K]) release(key K, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// Len reports how many keys are currently tracked.
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
