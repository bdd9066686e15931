package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is a process-local Cache. A background goroutine evicts
// expired entries until Close is called.
type MemoryCache struct {
	data   sync.Map
	config Config
	cancel context.CancelFunc
	once   sync.Once
}

type entry struct {
	value   []byte
	expires time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// NewMemoryCache creates an in-memory cache. Only TTL and Prefix of cfg are
// used.
func NewMemoryCache(cfg Config) *MemoryCache {
	ctx, cancel := context.WithCancel(context.Background())
	m := &MemoryCache{config: cfg, cancel: cancel}
	go m.janitor(ctx, time.Minute)
	return m
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := m.config.Prefix + key
	v, ok := m.data.Load(full)
	if !ok {
		return nil, ErrMiss{Key: key}
	}
	e := v.(entry)
	if e.expired(time.Now()) {
		m.data.Delete(full)
		return nil, ErrMiss{Key: key}
	}
	return e.value, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl == 0 {
		ttl = m.config.TTL
	}
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expires = time.Now().Add(ttl)
	}
	m.data.Store(m.config.Prefix+key, e)
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Delete(m.config.Prefix + key)
	return nil
}

func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.data.Range(func(k, _ interface{}) bool {
		m.data.Delete(k)
		return true
	})
	return nil
}

func (m *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.Get(ctx, key); err != nil {
		if IsMiss(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Close stops the eviction goroutine. It is safe to call more than once.
func (m *MemoryCache) Close() error {
	m.once.Do(m.cancel)
	return nil
}

// Len counts live entries
func (m *MemoryCache) Len() int {
	now := time.Now()
	n := 0
	m.data.Range(func(_, v interface{}) bool {
		if !v.(entry).expired(now) {
			n++
		}
		return true
	})
	return n
}

func (m *MemoryCache) janitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			m.data.Range(func(k, v interface{}) bool {
				if v.(entry).expired(now) {
					m.data.Delete(k)
				}
				return true
			})
		}
	}
}
