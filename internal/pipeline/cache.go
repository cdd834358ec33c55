package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/hirely/pluto/internal/types"
)

// BriefingCache memoizes generated briefings with single-flight semantics:
// at most one generation runs per key, and concurrent callers for the same
// key await that one result instead of issuing duplicate billed calls.
//
// The cache key embeds a hash of the generation inputs, so a changed resume,
// transcript, job, or scoring-config version naturally misses the old entry;
// Invalidate exists for explicit eviction.
type BriefingCache struct {
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*types.Briefing
}

// NewBriefingCache creates an empty briefing cache.
func NewBriefingCache() *BriefingCache {
	return &BriefingCache{
		entries: make(map[string]*types.Briefing),
	}
}

// BriefingKey builds the cache key for a (candidate, job, mode) triple plus
// input hash.
func BriefingKey(candidateID, jobID uuid.UUID, mode types.BriefingMode, inputHash string) string {
	return fmt.Sprintf("%s:%s:%s:%s", candidateID, jobID, mode, inputHash)
}

// BriefingInputHash hashes everything a briefing is generated from. Any
// change to the underlying resume, transcript, job requirements, or scoring
// config version produces a new hash and therefore a new cache key.
func BriefingInputHash(resumeText string, transcript *types.Transcript, job *types.JobRequirements, configVersion string) string {
	h := sha256.New()
	h.Write([]byte(resumeText))
	h.Write([]byte{0})
	if !transcript.Empty() {
		h.Write([]byte(transcript.Render()))
	}
	h.Write([]byte{0})
	if job != nil {
		// Field order in the struct is fixed, so the encoding is stable.
		if encoded, err := json.Marshal(job); err == nil {
			h.Write(encoded)
		}
	}
	h.Write([]byte{0})
	h.Write([]byte(configVersion))
	return hex.EncodeToString(h.Sum(nil))
}

// GetOrGenerate returns the cached briefing for key, or runs generate once
// (no matter how many callers arrive concurrently) and caches its result.
// Failed generations are not cached; the next caller retries.
func (c *BriefingCache) GetOrGenerate(ctx context.Context, key string, generate func(ctx context.Context) (*types.Briefing, error)) (*types.Briefing, error) {
	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the group: a previous flight may have filled
		// the entry between our read and this call.
		c.mu.RLock()
		cached, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		brief, err := generate(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = brief
		c.mu.Unlock()
		return brief, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Briefing), nil
}

// Invalidate drops the cached briefing for key, if any.
func (c *BriefingCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of cached briefings.
func (c *BriefingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
