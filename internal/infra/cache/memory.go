package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory keeps encoded bytes so cached values behave like redis copies.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &Memory{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := m.c.Get(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw.([]byte), dst); err != nil {
		m.c.Delete(key)
		return false, err
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.c.Set(key, b, ttl)
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	for key := range m.c.Items() {
		if strings.HasPrefix(key, prefix) {
			m.c.Delete(key)
		}
	}
	return nil
}
