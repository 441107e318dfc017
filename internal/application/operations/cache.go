package operations

import (
	"fmt"
	"sync"

	"github.com/healthstack/stockops-api/internal/application/dto"
)

// ListCache is a process-local snapshot cache for the operations listing,
// keyed by filter and page. A successful workflow action or creation
// invalidates every page so the next read reflects the new status.
type ListCache struct {
	mu    sync.RWMutex
	pages map[string]dto.StockOperationListResponse
}

// NewListCache builds an empty cache.
func NewListCache() *ListCache {
	return &ListCache{pages: make(map[string]dto.StockOperationListResponse)}
}

var _ Invalidator = (*ListCache)(nil)

func cacheKey(status string, limit, offset int) string {
	return fmt.Sprintf("%s|%d|%d", status, limit, offset)
}

// Get returns the cached page when present.
func (c *ListCache) Get(status string, limit, offset int) (dto.StockOperationListResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	resp, ok := c.pages[cacheKey(status, limit, offset)]
	return resp, ok
}

// Put stores a page.
func (c *ListCache) Put(status string, limit, offset int, resp dto.StockOperationListResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[cacheKey(status, limit, offset)] = resp
}

// Invalidate drops every cached page.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]dto.StockOperationListResponse)
}
