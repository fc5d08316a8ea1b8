package tui

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// colorCacheKey identifies a color-only state delta: the target foreground
// and background plus whether an explicit "49" background reset must be
// prepended.
type colorCacheKey struct {
	fg, bg  uint16
	resetBg bool
}

// colorCache memoizes assembled color-only ANSI deltas. It is purely a
// performance optimization over ColorToANSI/BuildANSISequence; correctness
// of the diff renderer never depends on it being populated.
type colorCache struct {
	lru *lru.Cache[colorCacheKey, string]
}

const defaultColorCacheSize = 1024

func newColorCache(size int) *colorCache {
	if size <= 0 {
		size = defaultColorCacheSize
	}
	c, err := lru.New[colorCacheKey, string](size)
	if err != nil {
		// size is always > 0 here, so lru.New cannot fail in practice.
		c, _ = lru.New[colorCacheKey, string](defaultColorCacheSize)
	}
	return &colorCache{lru: c}
}

// delta returns the color-only escape fragment for the given key, computing
// and caching it on a miss.
func (c *colorCache) delta(key colorCacheKey) string {
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := buildColorDelta(key)
	c.lru.Add(key, v)
	return v
}

func buildColorDelta(key colorCacheKey) string {
	var parts []string
	if key.resetBg {
		parts = append(parts, "49")
	}
	if f := ColorToANSI(key.fg, false); f != "" {
		parts = append(parts, f)
	} else {
		// A color-only delta is not preceded by SGR 0, so a default
		// foreground needs its own explicit reset.
		parts = append(parts, "39")
	}
	if b := ColorToANSI(key.bg, true); b != "" {
		parts = append(parts, b)
	}
	if len(parts) == 0 {
		return ""
	}
	seq := "\x1b["
	for i, p := range parts {
		if i > 0 {
			seq += ";"
		}
		seq += p
	}
	return seq + "m"
}
