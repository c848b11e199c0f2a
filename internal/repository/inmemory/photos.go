package inmemory

import (
	"context"
	"fmt"
	"sync"
)

// PhotoStore keeps uploaded photos in memory and hands back synthetic URLs.
// Useful for tests and the memory backend where no disk or cloud drive is
// wired.
type PhotoStore struct {
	mu     sync.Mutex
	photos map[string][]byte
}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{photos: make(map[string][]byte)}
}

func (p *PhotoStore) Upload(_ context.Context, data []byte, filename string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty photo data")
	}

	p.mu.Lock()
	stored := make([]byte, len(data))
	copy(stored, data)
	p.photos[filename] = stored
	p.mu.Unlock()

	return "memory://" + filename, nil
}

// Count reports how many photos were uploaded; used by tests.
func (p *PhotoStore) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.photos)
}
