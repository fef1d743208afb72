package credential

import (
	"context"
	"errors"

	"github.com/voicecart/voicecart-server/internal/storage"
	"github.com/voicecart/voicecart-server/pkg/logger"
)

// Resolver looks up the shopper's backend bearer token. Two locations
// exist per session: a persistent "remember me" slot and a session-only
// slot. The persistent slot wins when both are set. The token is opaque;
// its absence is the only "not logged in" signal.
type Resolver struct {
	storage storage.Storage
}

func NewResolver(st storage.Storage) *Resolver {
	return &Resolver{storage: st}
}

// Token resolves the bearer token for a session. Returns an empty string
// when the shopper is not logged in. Storage read failures degrade to
// "not logged in" rather than surfacing an error.
func (r *Resolver) Token(ctx context.Context, sessionID string) string {
	for _, key := range []string{storage.KeyAuthToken, storage.KeySessionToken} {
		data, err := r.storage.Read(ctx, storage.SessionKey(sessionID, key))
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				logger.Warn("Failed to read credential", map[string]interface{}{
					"session_id": sessionID,
					"key":        key,
					"error":      err.Error(),
				})
			}
			continue
		}
		if len(data) > 0 {
			return string(data)
		}
	}
	return ""
}

// Store saves a backend-issued token. With remember set it lands in the
// persistent slot, otherwise in the session-only slot. The other slot is
// cleared so a later lookup cannot resolve a stale token.
func (r *Resolver) Store(ctx context.Context, sessionID, token string, remember bool) error {
	target, other := storage.KeySessionToken, storage.KeyAuthToken
	if remember {
		target, other = storage.KeyAuthToken, storage.KeySessionToken
	}

	if err := r.storage.Write(ctx, storage.SessionKey(sessionID, target), []byte(token)); err != nil {
		return err
	}
	if err := r.storage.Delete(ctx, storage.SessionKey(sessionID, other)); err != nil {
		logger.Warn("Failed to clear stale credential slot", map[string]interface{}{
			"session_id": sessionID,
			"key":        other,
			"error":      err.Error(),
		})
	}

	logger.Info("Credential stored", map[string]interface{}{
		"session_id": sessionID,
		"remember":   remember,
	})
	return nil
}

// Clear removes the token from both locations.
func (r *Resolver) Clear(ctx context.Context, sessionID string) error {
	var firstErr error
	for _, key := range []string{storage.KeyAuthToken, storage.KeySessionToken} {
		if err := r.storage.Delete(ctx, storage.SessionKey(sessionID, key)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
