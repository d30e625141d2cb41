package sharktank

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nikogura/storyboard-scorer/pkg/plan"
	"github.com/pkg/errors"
)

// DefaultCacheSize bounds the number of cached assessments.
const DefaultCacheSize = 4096

// Cached memoizes a slow evaluator by document identity and content hash. Only successful
// evaluations are stored, so a failure is retried on the next call.
type Cached struct {
	inner Evaluator
	cache *lru.Cache[string, Score]
}

// NewCached wraps inner with a cache holding at most size entries.
func NewCached(inner Evaluator, size int) (cached *Cached, err error) {
	if inner == nil {
		err = errors.New("cached evaluator requires an inner evaluator")
		return cached, err
	}
	if size <= 0 {
		size = DefaultCacheSize
	}

	var cache *lru.Cache[string, Score]
	cache, err = lru.New[string, Score](size)
	if err != nil {
		err = errors.Wrap(err, "failed to create evaluation cache")
		return cached, err
	}

	cached = &Cached{
		inner: inner,
		cache: cache,
	}
	return cached, err
}

// Evaluate returns the cached score for this content or calls the inner evaluator.
func (c *Cached) Evaluate(ctx context.Context, doc plan.Document) (score Score, err error) {
	key := CacheKey(doc)

	if hit, ok := c.cache.Get(key); ok {
		score = hit
		return score, err
	}

	score, err = c.inner.Evaluate(ctx, doc)
	if err != nil {
		return score, err
	}

	c.cache.Add(key, score)
	return score, err
}

// Clear drops every cached score.
func (c *Cached) Clear() {
	c.cache.Purge()
}

// Len reports the number of cached scores.
func (c *Cached) Len() (n int) {
	n = c.cache.Len()
	return n
}

// CacheKey is "<document id>-<xxhash64 of section contents joined by '|'>".
func CacheKey(doc plan.Document) (key string) {
	contents := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		contents = append(contents, s.Content)
	}
	sum := xxhash.Sum64String(strings.Join(contents, "|"))
	key = doc.ID + "-" + strconv.FormatUint(sum, 16)
	return key
}
