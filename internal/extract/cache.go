package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/ppiankov/creditlens/internal/cache"
	"github.com/ppiankov/creditlens/internal/model"
)

// EntryCache stores extracted entries per source, keyed by the source's
// format, game, parsing hints, file contents and the section filter
type EntryCache struct {
	store  cache.Cache
	ttl    time.Duration
	filter string
}

// NewEntryCache wraps a byte cache for sources extracted with filter
func NewEntryCache(store cache.Cache, ttl time.Duration, filter *SectionFilter) *EntryCache {
	return &EntryCache{store: store, ttl: ttl, filter: filter.Fingerprint()}
}

// Get returns the cached entries for a loaded source
func (c *EntryCache) Get(src Source) ([]model.RawCreditEntry, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	data, ok := c.store.Get(c.key(src))
	if !ok {
		return nil, false
	}
	var entries []model.RawCreditEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Put stores the entries extracted from a loaded source
func (c *EntryCache) Put(src Source, entries []model.RawCreditEntry) error {
	if c == nil || c.store == nil {
		return nil
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.store.Set(c.key(src), data, c.ttl)
}

func (c *EntryCache) key(src Source) string {
	spec, _ := json.Marshal(src.Spec)

	h := sha256.New()
	h.Write([]byte(src.Format))
	h.Write([]byte{0})
	h.Write([]byte(src.Game))
	h.Write([]byte{0})
	h.Write(spec)
	h.Write([]byte{0})
	h.Write([]byte(c.filter))
	h.Write([]byte{0})
	h.Write(src.Data)

	return cache.CacheKey(hex.EncodeToString(h.Sum(nil)))
}
