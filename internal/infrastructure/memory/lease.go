package memory

import (
	"context"
	"sync"

	"github.com/fanfanvithon/ProPymeTransparente/internal/domain"
)

// leaseTable es un mutex por clave que respeta la cancelación del contexto.
type leaseTable struct {
	mu   sync.Mutex
	sems map[string]chan struct{}
}

func newLeaseTable() *leaseTable {
	return &leaseTable{sems: make(map[string]chan struct{})}
}

func (l *leaseTable) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.sems[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.sems[key] = sem
	}
	return sem
}

func (l *leaseTable) acquire(ctx context.Context, key string) error {
	select {
	case l.sem(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return domain.NewStorageError("lock producto", ctx.Err())
	}
}

func (l *leaseTable) release(key string) {
	<-l.sem(key)
}
