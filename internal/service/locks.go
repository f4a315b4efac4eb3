package service

import "sync"

// FileLocks serializes mutations per file ID. Concurrent edit/delete
// against one ID would otherwise race at the registry layer.
type FileLocks struct {
	mu    sync.Mutex
	locks map[string]*fileLock
}

type fileLock struct {
	mu   sync.Mutex
	refs int
}

func NewFileLocks() *FileLocks {
	return &FileLocks{locks: map[string]*fileLock{}}
}

// Lock blocks until the caller holds the mutex for id
func (l *FileLocks) Lock(id string) {
	l.mu.Lock()
	fl, ok := l.locks[id]
	if !ok {
		fl = &fileLock{}
		l.locks[id] = fl
	}
	fl.refs++
	l.mu.Unlock()

	fl.mu.Lock()
}

// Unlock releases the mutex for id and drops it once nobody waits on it
func (l *FileLocks) Unlock(id string) {
	l.mu.Lock()
	fl := l.locks[id]
	fl.refs--
	if fl.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()

	fl.mu.Unlock()
}
