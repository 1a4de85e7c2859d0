package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is the optional result cache behind the Scorer. Scoring is a pure
// function of its inputs, so caching is a performance layer only; a Scorer
// with a nil cache returns bit-identical results.
type Cache interface {
	GetObjective(key string) (ObjectiveScore, bool)
	PutObjective(key string, score ObjectiveScore)
	GetKeyResult(key string) (KeyResultScore, bool)
	PutKeyResult(key string, score KeyResultScore)
}

const (
	defaultCacheSize = 512
	defaultCacheTTL  = 10 * time.Minute
)

type objEntry struct {
	score    ObjectiveScore
	storedAt time.Time
}

type krEntry struct {
	score    KeyResultScore
	storedAt time.Time
}

// LRUCache is an LRU-with-TTL cache. Entries are immutable once written;
// expiry is checked on read, so no background sweeper is needed.
type LRUCache struct {
	objectives *lru.Cache[string, objEntry]
	keyResults *lru.Cache[string, krEntry]
	ttl        time.Duration
	now        func() time.Time
}

// NewLRUCache builds a cache with the given size and TTL. Zero values fall
// back to the defaults.
func NewLRUCache(size int, ttl time.Duration) (*LRUCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	objs, err := lru.New[string, objEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create objective cache: %w", err)
	}
	krs, err := lru.New[string, krEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create key result cache: %w", err)
	}
	return &LRUCache{
		objectives: objs,
		keyResults: krs,
		ttl:        ttl,
		now:        time.Now,
	}, nil
}

func (c *LRUCache) GetObjective(key string) (ObjectiveScore, bool) {
	entry, ok := c.objectives.Get(key)
	if !ok {
		return ObjectiveScore{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.objectives.Remove(key)
		return ObjectiveScore{}, false
	}
	return entry.score, true
}

func (c *LRUCache) PutObjective(key string, score ObjectiveScore) {
	c.objectives.Add(key, objEntry{score: score, storedAt: c.now()})
}

func (c *LRUCache) GetKeyResult(key string) (KeyResultScore, bool) {
	entry, ok := c.keyResults.Get(key)
	if !ok {
		return KeyResultScore{}, false
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		c.keyResults.Remove(key)
		return KeyResultScore{}, false
	}
	return entry.score, true
}

func (c *LRUCache) PutKeyResult(key string, score KeyResultScore) {
	c.keyResults.Add(key, krEntry{score: score, storedAt: c.now()})
}

// fingerprint builds the content+context cache key.
func fingerprint(kind, text string, ctx Context, scope string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%s\x00%d\x00%t\x00%s",
		kind, text, ctx.Industry, ctx.Function, ctx.Timeframe,
		ctx.TeamSize, ctx.CrossFunctional, scope)
	return hex.EncodeToString(h.Sum(nil))
}
