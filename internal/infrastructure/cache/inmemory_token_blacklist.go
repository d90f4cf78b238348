package cache

import (
	"context"
	"sync"
	"time"
)

type revocation struct {
	expiresAt time.Time
}

// InMemoryTokenBlacklist implements TokenBlacklist using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemoryTokenBlacklist struct {
	mu        sync.RWMutex
	entries   map[string]revocation
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryTokenBlacklist creates an in-memory blacklist with a background
// goroutine that removes expired entries.
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	b := &InMemoryTokenBlacklist{
		entries:  make(map[string]revocation),
		stopChan: make(chan struct{}),
	}

	b.wg.Add(1)
	go b.cleanupLoop()

	return b
}

// Revoke marks a token ID as revoked for the given TTL
func (b *InMemoryTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[jti] = revocation{expiresAt: time.Now().Add(ttl)}
	return nil
}

// IsRevoked checks whether a token ID has been revoked
func (b *InMemoryTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, exists := b.entries[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(r.expiresAt) {
		return false, nil
	}
	return true, nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (b *InMemoryTokenBlacklist) Close() error {
	b.closeOnce.Do(func() {
		close(b.stopChan)
		b.wg.Wait()
	})
	return nil
}

func (b *InMemoryTokenBlacklist) cleanupLoop() {
	defer b.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.cleanup()
		}
	}
}

func (b *InMemoryTokenBlacklist) cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	for jti, r := range b.entries {
		if now.After(r.expiresAt) {
			delete(b.entries, jti)
		}
	}
}

// Size returns the number of tracked revocations (for testing/monitoring)
func (b *InMemoryTokenBlacklist) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
