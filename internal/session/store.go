package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/academy-labs/academy-api/pkg/metrics"
)

// Store keeps sessions in memory keyed by token. Entries expire after the
// configured TTL; expiry invalidates the token and any privileges the
// session carried.
type Store interface {
	Get(token string) (*Session, bool)
	Put(token string, s *Session)
	Delete(token string)
	Len() int
}

type memoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore builds an in-memory store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) Store {
	cleanup := ttl / 4
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &memoryStore{cache: gocache.New(ttl, cleanup)}
}

func (m *memoryStore) Get(token string) (*Session, bool) {
	v, ok := m.cache.Get(token)
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

func (m *memoryStore) Put(token string, s *Session) {
	m.cache.Set(token, s, gocache.DefaultExpiration)
	metrics.SessionsActive.Set(float64(m.cache.ItemCount()))
}

func (m *memoryStore) Delete(token string) {
	m.cache.Delete(token)
	metrics.SessionsActive.Set(float64(m.cache.ItemCount()))
}

func (m *memoryStore) Len() int {
	return m.cache.ItemCount()
}
