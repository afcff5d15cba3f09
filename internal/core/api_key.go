package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiofx/platform/internal/crypto"
	"github.com/studiofx/platform/internal/model"
	"github.com/studiofx/platform/internal/platform"
)

// ErrInvalidAPIKey is the single failure result of Validate. Malformed
// tokens, unknown public ids, secret mismatches, and revoked or expired keys
// all collapse into it so a remote caller cannot probe which branch failed.
var ErrInvalidAPIKey = errors.New("invalid api key")

const (
	publicIDLength = 16
	secretLength   = 24

	// Attempts to regenerate the public id when insert hits the unique
	// index. A collision at 16 alphanumeric characters is negligible; a
	// second one in a row means something is broken.
	createAttempts = 3
)

// decoySecretHash is verified against when a lookup finds no key record, so
// the unknown-id rejection pays the same hashing cost as a secret mismatch.
// Hashed once at startup from a secret nobody holds.
var decoySecretHash = func() string {
	hash, err := crypto.HashSecret(platform.NewToken(secretLength))
	if err != nil {
		panic("hash decoy secret: " + err.Error())
	}
	return hash
}()

// KeyStore is the persistence contract the service drives.
type KeyStore interface {
	Insert(ctx context.Context, key *model.APIKey) error
	FindByPublicID(ctx context.Context, publicID string) (*model.APIKey, error)
	FindAllByOwner(ctx context.Context, ownerID string) ([]model.APIKey, error)
	MarkUsedNow(ctx context.Context, publicID string) error
	MarkRevoked(ctx context.Context, publicID, ownerID string) error
}

// UserResolver turns a key's owner reference into the user it authenticates.
type UserResolver interface {
	ResolveByID(ctx context.Context, id string) (*model.User, error)
}

// APIKeyService orchestrates issuance, validation, and revocation of API
// keys. It is stateless; all state lives in the store.
type APIKeyService struct {
	store  KeyStore
	users  UserResolver
	logger zerolog.Logger
}

func NewAPIKeyService(store KeyStore, users UserResolver, logger zerolog.Logger) *APIKeyService {
	return &APIKeyService{store: store, users: users, logger: logger}
}

// Create issues a new API key for a user and returns the stored record along
// with the full key string. The full key is the only place the secret ever
// exists in plaintext; losing it means revoking and reissuing.
func (s *APIKeyService) Create(ctx context.Context, ownerID, name string, expiresAt *time.Time) (*model.APIKey, string, error) {
	secret := platform.NewToken(secretLength)

	secretHash, err := crypto.HashSecret(secret)
	if err != nil {
		return nil, "", fmt.Errorf("hash api key secret: %w", err)
	}

	for attempt := 0; attempt < createAttempts; attempt++ {
		key := &model.APIKey{
			PublicID:   platform.NewToken(publicIDLength),
			OwnerID:    ownerID,
			Name:       name,
			SecretHash: secretHash,
			ExpiresAt:  expiresAt,
		}

		err = s.store.Insert(ctx, key)
		if errors.Is(err, ErrDuplicatePublicID) {
			s.logger.Warn().Str("public_id", key.PublicID).Msg("api key public id collision, regenerating")
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("create api key: %w", err)
		}

		return key, crypto.EncodeAPIKey(key.PublicID, secret), nil
	}

	return nil, "", fmt.Errorf("create api key: %w", err)
}

// IsAPIKey reports whether a bearer token is shaped like a platform API key.
func (s *APIKeyService) IsAPIKey(token string) bool {
	return crypto.LooksLikeAPIKey(token)
}

// Validate resolves a presented token to its owning user. Every rejection
// returns ErrInvalidAPIKey; the specific reason goes only to the debug log.
// Infrastructure failures during lookup or user resolution propagate as-is
// so a healthy key is never silently rejected.
func (s *APIKeyService) Validate(ctx context.Context, token string) (*model.User, error) {
	publicID, secret, err := crypto.DecodeAPIKey(token)
	if err != nil {
		s.logger.Debug().Msg("api key rejected: malformed token")
		return nil, ErrInvalidAPIKey
	}

	key, err := s.store.FindByPublicID(ctx, publicID)
	if errors.Is(err, ErrAPIKeyNotFound) {
		// Burn the same argon2 cost as a real verification so an unknown
		// public id is not distinguishable from a wrong secret by response
		// time.
		crypto.VerifySecret(secret, decoySecretHash)
		s.logger.Debug().Str("public_id", publicID).Msg("api key rejected: unknown public id")
		return nil, ErrInvalidAPIKey
	}
	if err != nil {
		return nil, fmt.Errorf("validate api key: %w", err)
	}

	if !crypto.VerifySecret(secret, key.SecretHash) {
		s.logger.Debug().Str("public_id", publicID).Msg("api key rejected: secret mismatch")
		return nil, ErrInvalidAPIKey
	}

	if !key.ValidAt(time.Now()) {
		s.logger.Debug().Str("public_id", publicID).Msg("api key rejected: revoked or expired")
		return nil, ErrInvalidAPIKey
	}

	// Best effort: a failed usage stamp must never reject a valid key.
	if err := s.store.MarkUsedNow(ctx, publicID); err != nil {
		s.logger.Warn().Err(err).Str("public_id", publicID).Msg("failed to update api key last_used_at")
	}

	user, err := s.users.ResolveByID(ctx, key.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("resolve api key owner: %w", err)
	}
	return user, nil
}

// Revoke permanently invalidates a key. Only the owner may revoke; the
// outcome distinguishes ErrAPIKeyNotFound from ErrNotKeyOwner because the
// caller is already authenticated.
func (s *APIKeyService) Revoke(ctx context.Context, publicID, ownerID string) error {
	return s.store.MarkRevoked(ctx, publicID, ownerID)
}

// ListForOwner returns a user's keys for the management UI. Secret hashes
// never leave the model's JSON encoding.
func (s *APIKeyService) ListForOwner(ctx context.Context, ownerID string) ([]model.APIKey, error) {
	return s.store.FindAllByOwner(ctx, ownerID)
}
