package markdown

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/zjrosen/flightdeck/internal/cachemanager"
	"github.com/zjrosen/flightdeck/internal/log"
)

const renderTTL = 30 * time.Minute

type renderKey string

type renderInput struct {
	text  string
	width int
}

// Cache memoizes rendered markdown by (style, width, text). Panels are
// re-laid out on every resize, and glamour is by far the most expensive
// part of a placeholder render.
type Cache struct {
	style     string
	renderers map[int]*Renderer
	store     *cachemanager.InMemoryCacheManager[renderKey, string]
	rtc       *cachemanager.ReadThroughCache[renderKey, string, renderInput]
}

// NewCache creates an empty cache for style.
func NewCache(style string) *Cache {
	c := &Cache{
		style:     style,
		renderers: make(map[int]*Renderer),
		store: cachemanager.NewInMemoryCacheManager[renderKey, string](
			"markdown", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
	}
	c.rtc = cachemanager.NewReadThroughCache[renderKey, string, renderInput](c.store, c.render, false)
	return c
}

// Render returns text rendered at width. On a glamour failure the raw text is
// returned so a description is never lost.
func (c *Cache) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	width = max(width, 1)

	out, err := c.rtc.GetWithRefresh(context.Background(), c.key(text, width), renderInput{text: text, width: width}, renderTTL)
	if err != nil {
		log.ErrorErr(log.CatCache, "markdown render failed", err, "width", width)
		return text
	}
	return out
}

// Stats reports cache hits and misses.
func (c *Cache) Stats() cachemanager.Stats {
	return c.rtc.Stats()
}

// Len reports the number of cached renders.
func (c *Cache) Len() int {
	return c.store.Len()
}

func (c *Cache) render(_ context.Context, in renderInput) (string, error) {
	r, ok := c.renderers[in.width]
	if !ok {
		var err error
		r, err = New(in.width, c.style)
		if err != nil {
			return "", err
		}
		c.renderers[in.width] = r
	}
	out, err := r.Render(in.text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func (c *Cache) key(text string, width int) renderKey {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return renderKey(fmt.Sprintf("%s:%d:%x", c.style, width, h.Sum64()))
}
