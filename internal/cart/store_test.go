package cart

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	st := NewState()
	st.Items["a"] = ItemSnapshot{ID: "a", Name: "A", IsAvailable: true, Options: []string{"extra cheese"}}
	require.NoError(t, st.Cart.ChangeQuantity(st.Items["a"], 2))
	st.Cart.ToggleOption("a", "extra cheese")

	require.NoError(t, store.Save(ctx, "v1", "suria", st))

	loaded, err := store.Load(ctx, "v1", "suria")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Cart.Entries["a"].Qty)
	assert.Equal(t, []string{"extra cheese"}, loaded.Cart.Entries["a"].Options)
	assert.Equal(t, []string{"a"}, loaded.Cart.Order)
	assert.Equal(t, "A", loaded.Items["a"].Name)
}

func TestRedisStore_MissingStateIsFresh(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)

	st, err := store.Load(context.Background(), "nobody", "nowhere")
	require.NoError(t, err)
	assert.True(t, st.Cart.IsEmpty())
	assert.Empty(t, st.Items)
}

func TestRedisStore_StateExpires(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	st := NewState()
	st.Items["a"] = ItemSnapshot{ID: "a", Name: "A", IsAvailable: true}
	require.NoError(t, st.Cart.ChangeQuantity(st.Items["a"], 1))
	require.NoError(t, store.Save(ctx, "v1", "suria", st))

	mr.FastForward(2 * time.Minute)

	loaded, err := store.Load(ctx, "v1", "suria")
	require.NoError(t, err)
	assert.True(t, loaded.Cart.IsEmpty(), "expired cart comes back empty")
}

func TestRedisStore_DeleteIsIdempotent(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	st := NewState()
	st.Items["a"] = ItemSnapshot{ID: "a", Name: "A", IsAvailable: true}
	require.NoError(t, st.Cart.ChangeQuantity(st.Items["a"], 1))
	require.NoError(t, store.Save(ctx, "v1", "suria", st))

	require.NoError(t, store.Delete(ctx, "v1", "suria"))
	require.NoError(t, store.Delete(ctx, "v1", "suria"))

	loaded, err := store.Load(ctx, "v1", "suria")
	require.NoError(t, err)
	assert.True(t, loaded.Cart.IsEmpty())
}
