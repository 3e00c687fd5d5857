package archive

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/moodsip/internal/domain/insight"
)

// MemoryArchive keeps reports in memory for tests/dev.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string]Object
}

// Object is an archived blob.
type Object struct {
	Data        []byte
	ContentType string
}

var _ insight.Archive = (*MemoryArchive)(nil)

// NewMemoryArchive constructs an empty archive.
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string]Object)}
}

// Put stores a copy of data under key.
func (a *MemoryArchive) Put(_ context.Context, key string, data []byte, contentType string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects[key] = Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// Get returns the object stored under key.
func (a *MemoryArchive) Get(key string) (Object, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	obj, ok := a.objects[key]
	return obj, ok
}

// Keys lists stored keys in lexical order.
func (a *MemoryArchive) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	keys := make([]string, 0, len(a.objects))
	for k := range a.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
