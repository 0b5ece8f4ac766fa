package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// State is everything the console keeps for one visitor on one restaurant
// menu: the cart itself plus the item snapshot from the last served menu,
// which quantity changes are validated against.
type State struct {
	Cart  *Cart                   `json:"cart"`
	Items map[string]ItemSnapshot `json:"items"`
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		Cart:  New(),
		Items: make(map[string]ItemSnapshot),
	}
}

// Store persists cart state per (visitor, restaurant slug). Absent state is
// returned as a fresh empty State, never an error: an empty cart and a
// never-touched cart are the same thing.
type Store interface {
	Load(ctx context.Context, visitorID, slug string) (*State, error)
	Save(ctx context.Context, visitorID, slug string, st *State) error
	Delete(ctx context.Context, visitorID, slug string) error
}

const cartKeyPrefix = "console:cart:"

func cartKey(visitorID, slug string) string {
	return cartKeyPrefix + visitorID + ":" + slug
}

// RedisStore keeps cart state in Redis with a TTL, the server-side analog
// of page-scoped state
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load fetches the state, or a fresh empty one when none exists
func (s *RedisStore) Load(ctx context.Context, visitorID, slug string) (*State, error) {
	raw, err := s.client.Get(ctx, cartKey(visitorID, slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if st.Cart == nil {
		st.Cart = New()
	}
	if st.Cart.Entries == nil {
		st.Cart.Entries = make(map[string]*Entry)
	}
	if st.Items == nil {
		st.Items = make(map[string]ItemSnapshot)
	}
	return &st, nil
}

// Save writes the state and resets its TTL
func (s *RedisStore) Save(ctx context.Context, visitorID, slug string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(visitorID, slug), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

// Delete removes the state, idempotently
func (s *RedisStore) Delete(ctx context.Context, visitorID, slug string) error {
	if err := s.client.Del(ctx, cartKey(visitorID, slug)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// MemoryStore is an in-process cart store for tests
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewMemoryStore creates an in-memory cart store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*State)}
}

// Load fetches the state, or a fresh empty one when none exists
func (s *MemoryStore) Load(_ context.Context, visitorID, slug string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[cartKey(visitorID, slug)]
	if !ok {
		return NewState(), nil
	}
	// copy through JSON so callers never share entries with the store
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	var out State
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out.Cart == nil {
		out.Cart = New()
	}
	if out.Cart.Entries == nil {
		out.Cart.Entries = make(map[string]*Entry)
	}
	if out.Items == nil {
		out.Items = make(map[string]ItemSnapshot)
	}
	return &out, nil
}

// Save writes the state
func (s *MemoryStore) Save(_ context.Context, visitorID, slug string, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[cartKey(visitorID, slug)] = st
	return nil
}

// Delete removes the state, idempotently
func (s *MemoryStore) Delete(_ context.Context, visitorID, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, cartKey(visitorID, slug))
	return nil
}
