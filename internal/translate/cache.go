package translate

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// chunkCache keeps translated chunks in memory for the life of the process.
type chunkCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func newChunkCache(maxCost int64, ttl time.Duration) (*chunkCache, error) {
	if maxCost <= 0 {
		return nil, nil
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxCost * 10,
		MaxCost:            maxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create chunk cache: %w", err)
	}
	return &chunkCache{c: c, ttl: ttl}, nil
}

func chunkKey(from, to Language, items []string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", from, to)
	for _, it := range items {
		fmt.Fprintf(h, "%d:%s", len(it), it)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (cc *chunkCache) get(key string) ([]Result, bool) {
	if cc == nil {
		return nil, false
	}
	v, ok := cc.c.Get(key)
	if !ok {
		return nil, false
	}
	res, ok := v.([]Result)
	if !ok {
		return nil, false
	}
	out := make([]Result, len(res))
	copy(out, res)
	return out, true
}

func (cc *chunkCache) set(key string, res []Result) {
	if cc == nil || len(res) == 0 {
		return
	}
	stored := make([]Result, len(res))
	copy(stored, res)
	cc.c.SetWithTTL(key, stored, int64(len(stored)), cc.ttl)
}

func (cc *chunkCache) wait() {
	if cc != nil {
		cc.c.Wait()
	}
}

func (cc *chunkCache) close() {
	if cc != nil {
		cc.c.Close()
	}
}
