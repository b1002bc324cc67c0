package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/freelancehub-backend/internal/domain/entity"
	"github.com/ignatzorin/freelancehub-backend/internal/goroutine"
)

const cleanupInterval = 5 * time.Minute

// MemoryIdentityCache - кэш в памяти процесса для запуска без Redis.
type MemoryIdentityCache struct {
	mu    sync.RWMutex
	items map[uuid.UUID]memoryEntry
	ttl   time.Duration
}

type memoryEntry struct {
	identity  entity.Identity
	expiresAt time.Time
}

// NewMemoryIdentityCache создаёт кэш и запускает очистку просроченных записей до отмены ctx.
func NewMemoryIdentityCache(ctx context.Context, ttl time.Duration) *MemoryIdentityCache {
	c := &MemoryIdentityCache{
		items: make(map[uuid.UUID]memoryEntry),
		ttl:   ttl,
	}
	goroutine.SafeGoWithContext(ctx, "identity-cache", c.cleanup)
	return c
}

func (c *MemoryIdentityCache) Get(_ context.Context, userID uuid.UUID) (entity.Identity, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.items[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return entity.Identity{}, false, nil
	}
	return entry.identity, true, nil
}

func (c *MemoryIdentityCache) Set(_ context.Context, identity entity.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[identity.ID] = memoryEntry{identity: identity, expiresAt: time.Now().Add(c.ttl)}
	return nil
}

func (c *MemoryIdentityCache) Delete(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, userID)
	return nil
}

func (c *MemoryIdentityCache) cleanup(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for id, entry := range c.items {
				if now.After(entry.expiresAt) {
					delete(c.items, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
