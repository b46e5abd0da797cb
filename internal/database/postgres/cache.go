package postgres

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/repository"
)

// cachedSnapshot wraps a snapshot with version metadata for cache invalidation
type cachedSnapshot struct {
	Version  string
	Snapshot domain.CharacterSnapshot
	CachedAt time.Time
}

// CachedRepository fronts a character repository with an expiring LRU of
// snapshots. Saves write through and refresh the cached copy.
type CachedRepository struct {
	inner repository.Character
	lru   *expirable.LRU[string, *cachedSnapshot]
}

// NewCachedRepository wraps inner with a cache of at most size entries that
// expire after ttl.
func NewCachedRepository(inner repository.Character, size int, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		inner: inner,
		lru:   expirable.NewLRU[string, *cachedSnapshot](size, nil, ttl),
	}
}

// Load returns the cached snapshot when present and current, otherwise reads
// through to the inner repository.
func (c *CachedRepository) Load(ctx context.Context, id string) (domain.CharacterSnapshot, error) {
	if entry, ok := c.lru.Get(id); ok {
		if entry.Version == CacheSchemaVersion {
			return entry.Snapshot, nil
		}
		c.lru.Remove(id)
	}

	s, err := c.inner.Load(ctx, id)
	if err != nil {
		return domain.CharacterSnapshot{}, err
	}
	c.put(s)
	return s, nil
}

// Save writes through. The cache is only refreshed when the write succeeds.
func (c *CachedRepository) Save(ctx context.Context, s domain.CharacterSnapshot) error {
	if err := c.inner.Save(ctx, s); err != nil {
		c.lru.Remove(s.ID)
		return err
	}
	c.put(s)
	return nil
}

// SaveMany writes through in one call to the inner repository.
func (c *CachedRepository) SaveMany(ctx context.Context, snapshots []domain.CharacterSnapshot) error {
	if err := c.inner.SaveMany(ctx, snapshots); err != nil {
		for _, s := range snapshots {
			c.lru.Remove(s.ID)
		}
		return err
	}
	for _, s := range snapshots {
		c.put(s)
	}
	return nil
}

// Invalidate drops a cached snapshot.
func (c *CachedRepository) Invalidate(id string) {
	c.lru.Remove(id)
}

// Len reports the number of cached snapshots.
func (c *CachedRepository) Len() int {
	return c.lru.Len()
}

func (c *CachedRepository) put(s domain.CharacterSnapshot) {
	c.lru.Add(s.ID, &cachedSnapshot{Version: CacheSchemaVersion, Snapshot: s, CachedAt: time.Now()})
}
