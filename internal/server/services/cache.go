package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// SummaryCache keeps computed per-user summaries for a short while. Writes
// that change a user's food or body data must call Invalidate.
type SummaryCache struct {
	c *cache.Cache
}

func NewSummaryCache(ttl time.Duration) *SummaryCache {
	return &SummaryCache{c: cache.New(ttl, 2*ttl)}
}

func summaryKey(kind string, userID int64) string {
	return fmt.Sprintf("%s:%d", kind, userID)
}

func (s *SummaryCache) get(kind string, userID int64) (any, bool) {
	if s == nil {
		return nil, false
	}
	return s.c.Get(summaryKey(kind, userID))
}

func (s *SummaryCache) set(kind string, userID int64, v any) {
	if s == nil {
		return
	}
	s.c.SetDefault(summaryKey(kind, userID), v)
}

// Invalidate drops every cached summary of the user.
func (s *SummaryCache) Invalidate(userID int64) {
	if s == nil {
		return
	}
	for _, kind := range []string{summaryFood, summaryBodyweight} {
		s.c.Delete(summaryKey(kind, userID))
	}
}

const (
	summaryFood       = "food"
	summaryBodyweight = "bodyweight"
)
