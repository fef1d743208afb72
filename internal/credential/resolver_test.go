package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voicecart/voicecart-server/internal/storage"
)

func TestResolver_Token_Empty(t *testing.T) {
	resolver := NewResolver(storage.NewMemoryStorage())
	assert.Empty(t, resolver.Token(context.Background(), "s1"))
}

func TestResolver_Store_SessionOnly(t *testing.T) {
	resolver := NewResolver(storage.NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, resolver.Store(ctx, "s1", "tok-session", false))
	assert.Equal(t, "tok-session", resolver.Token(ctx, "s1"))
}

func TestResolver_PersistentWins(t *testing.T) {
	st := storage.NewMemoryStorage()
	resolver := NewResolver(st)
	ctx := context.Background()

	// Seed both slots directly; the persistent one must win.
	require.NoError(t, st.Write(ctx, storage.SessionKey("s1", storage.KeyAuthToken), []byte("tok-persistent")))
	require.NoError(t, st.Write(ctx, storage.SessionKey("s1", storage.KeySessionToken), []byte("tok-session")))

	assert.Equal(t, "tok-persistent", resolver.Token(ctx, "s1"))
}

func TestResolver_Store_ClearsOtherSlot(t *testing.T) {
	st := storage.NewMemoryStorage()
	resolver := NewResolver(st)
	ctx := context.Background()

	require.NoError(t, resolver.Store(ctx, "s1", "tok-a", true))
	require.NoError(t, resolver.Store(ctx, "s1", "tok-b", false))

	// The persistent slot from the first login must be gone, otherwise
	// it would shadow the newer session-only token.
	_, err := st.Read(ctx, storage.SessionKey("s1", storage.KeyAuthToken))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, "tok-b", resolver.Token(ctx, "s1"))
}

func TestResolver_Clear(t *testing.T) {
	resolver := NewResolver(storage.NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, resolver.Store(ctx, "s1", "tok", true))
	require.NoError(t, resolver.Clear(ctx, "s1"))
	assert.Empty(t, resolver.Token(ctx, "s1"))
}

func TestResolver_SessionIsolation(t *testing.T) {
	resolver := NewResolver(storage.NewMemoryStorage())
	ctx := context.Background()

	require.NoError(t, resolver.Store(ctx, "s1", "tok-1", true))
	assert.Empty(t, resolver.Token(ctx, "s2"))
}
