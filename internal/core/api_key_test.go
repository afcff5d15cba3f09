package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiofx/platform/internal/crypto"
	"github.com/studiofx/platform/internal/model"
	"github.com/studiofx/platform/internal/platform"
)

// fakeKeyStore is an in-memory KeyStore so service tests can exercise full
// issue/validate/revoke round trips without a database.
type fakeKeyStore struct {
	keys         map[string]*model.APIKey
	nextID       int64
	failInserts  int
	failMarkUsed bool
	findErr      error
}

func newFakeKeyStore() *fakeKeyStore {
	return &fakeKeyStore{keys: make(map[string]*model.APIKey)}
}

func (f *fakeKeyStore) Insert(_ context.Context, key *model.APIKey) error {
	if f.failInserts > 0 {
		f.failInserts--
		return ErrDuplicatePublicID
	}
	if _, ok := f.keys[key.PublicID]; ok {
		return ErrDuplicatePublicID
	}
	f.nextID++
	key.ID = f.nextID
	key.CreatedAt = time.Now()
	cp := *key
	f.keys[key.PublicID] = &cp
	return nil
}

func (f *fakeKeyStore) FindByPublicID(_ context.Context, publicID string) (*model.APIKey, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	key, ok := f.keys[publicID]
	if !ok {
		return nil, ErrAPIKeyNotFound
	}
	cp := *key
	return &cp, nil
}

func (f *fakeKeyStore) FindAllByOwner(_ context.Context, ownerID string) ([]model.APIKey, error) {
	var out []model.APIKey
	for _, k := range f.keys {
		if k.OwnerID == ownerID {
			out = append(out, *k)
		}
	}
	return out, nil
}

func (f *fakeKeyStore) MarkUsedNow(_ context.Context, publicID string) error {
	if f.failMarkUsed {
		return errors.New("write timeout")
	}
	if k, ok := f.keys[publicID]; ok {
		now := time.Now()
		k.LastUsedAt = &now
	}
	return nil
}

func (f *fakeKeyStore) MarkRevoked(_ context.Context, publicID, ownerID string) error {
	k, ok := f.keys[publicID]
	if !ok {
		return ErrAPIKeyNotFound
	}
	if k.OwnerID != ownerID {
		return ErrNotKeyOwner
	}
	if k.RevokedAt == nil {
		now := time.Now()
		k.RevokedAt = &now
	}
	return nil
}

type fakeUserResolver struct {
	users map[string]*model.User
	err   error
}

func (f *fakeUserResolver) ResolveByID(_ context.Context, id string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func newTestAPIKeyService() (*APIKeyService, *fakeKeyStore) {
	store := newFakeKeyStore()
	users := &fakeUserResolver{users: map[string]*model.User{
		"owner-1": {ID: "owner-1", Email: "dev@studiofx.io"},
	}}
	return NewAPIKeyService(store, users, zerolog.Nop()), store
}

// ---------- Create ----------

func TestAPIKeyService_Create(t *testing.T) {
	svc, store := newTestAPIKeyService()
	ctx := context.Background()

	key, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fullKey, "sfx_"))
	assert.Equal(t, "owner-1", key.OwnerID)
	assert.Equal(t, "ci", key.Name)
	assert.Nil(t, key.ExpiresAt)
	assert.Nil(t, key.RevokedAt)
	assert.NotZero(t, key.ID)

	// The stored hash must not contain the secret, and the full key must
	// embed the public id but never the hash.
	publicID, secret, err := crypto.DecodeAPIKey(fullKey)
	require.NoError(t, err)
	assert.Equal(t, key.PublicID, publicID)
	assert.NotContains(t, key.SecretHash, secret)
	assert.NotContains(t, fullKey, key.SecretHash)

	stored := store.keys[key.PublicID]
	require.NotNil(t, stored)
	assert.True(t, crypto.VerifySecret(secret, stored.SecretHash))
}

func TestAPIKeyService_Create_DistinctKeys(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	k1, full1, err := svc.Create(ctx, "owner-1", "same name", nil)
	require.NoError(t, err)
	k2, full2, err := svc.Create(ctx, "owner-1", "same name", nil)
	require.NoError(t, err)

	assert.NotEqual(t, k1.PublicID, k2.PublicID)
	assert.NotEqual(t, full1, full2)
	assert.NotEqual(t, k1.SecretHash, k2.SecretHash)
}

func TestAPIKeyService_Create_RetriesOnDuplicatePublicID(t *testing.T) {
	svc, store := newTestAPIKeyService()
	store.failInserts = 2
	ctx := context.Background()

	key, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, fullKey)
	assert.NotZero(t, key.ID)
}

func TestAPIKeyService_Create_RetriesExhausted(t *testing.T) {
	svc, store := newTestAPIKeyService()
	store.failInserts = 10
	ctx := context.Background()

	_, _, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicatePublicID)
}

// ---------- Validate ----------

func TestAPIKeyService_Validate_RoundTrip(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	_, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	user, err := svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", user.ID)
}

func TestAPIKeyService_Validate_UpdatesLastUsed(t *testing.T) {
	svc, store := newTestAPIKeyService()
	ctx := context.Background()

	key, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.NotNil(t, store.keys[key.PublicID].LastUsedAt)
}

func TestAPIKeyService_Validate_MarkUsedFailureIsSwallowed(t *testing.T) {
	svc, store := newTestAPIKeyService()
	ctx := context.Background()

	_, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	store.failMarkUsed = true
	user, err := svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", user.ID)
}

func TestAPIKeyService_Validate_AllRejectionsCollapse(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	_, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	// Tamper with one character of the secret segment.
	tampered := []byte(fullKey)
	last := len(tampered) - 1
	if tampered[last] == 'a' {
		tampered[last] = 'b'
	} else {
		tampered[last] = 'a'
	}

	revokedKey, revokedFull, err := svc.Create(ctx, "owner-1", "old", nil)
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, revokedKey.PublicID, "owner-1"))

	past := time.Now().Add(-time.Hour)
	_, expiredFull, err := svc.Create(ctx, "owner-1", "expired", &past)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "sfx_invalid_key_12345"},
		{"wrong prefix", "not_a_valid_token"},
		{"unknown public id", "sfx_nosuchpublicid00.abcdefghijklmnopqrstuvwx"},
		{"tampered secret", string(tampered)},
		{"revoked", revokedFull},
		{"expired", expiredFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Validate(ctx, tt.token)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrInvalidAPIKey)
		})
	}

	// The untouched valid key still works after all that.
	user, err := svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", user.ID)
}

func TestAPIKeyService_Validate_ExpiryBoundary(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	future := time.Now().Add(time.Hour)
	_, fullKey, err := svc.Create(ctx, "owner-1", "short lived", &future)
	require.NoError(t, err)

	user, err := svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", user.ID)
}

func TestAPIKeyService_Validate_StoreFailurePropagates(t *testing.T) {
	svc, store := newTestAPIKeyService()
	ctx := context.Background()

	_, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	store.findErr = errors.New("connection refused")
	_, err = svc.Validate(ctx, fullKey)
	require.Error(t, err)
	// An infrastructure failure is not an invalid key.
	assert.NotErrorIs(t, err, ErrInvalidAPIKey)
}

// ---------- Revoke ----------

func TestAPIKeyService_Revoke_Permanent(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	key, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, key.PublicID, "owner-1"))

	for i := 0; i < 3; i++ {
		_, err := svc.Validate(ctx, fullKey)
		assert.ErrorIs(t, err, ErrInvalidAPIKey)
	}
}

func TestAPIKeyService_Revoke_Idempotent(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	key, _, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	assert.NoError(t, svc.Revoke(ctx, key.PublicID, "owner-1"))
	assert.NoError(t, svc.Revoke(ctx, key.PublicID, "owner-1"))
}

func TestAPIKeyService_Revoke_NonOwnerForbidden(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	key, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)

	err = svc.Revoke(ctx, key.PublicID, "intruder")
	assert.ErrorIs(t, err, ErrNotKeyOwner)

	// The failed attempt must not have revoked anything.
	user, err := svc.Validate(ctx, fullKey)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", user.ID)
}

func TestAPIKeyService_Revoke_NotFound(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	err := svc.Revoke(context.Background(), "nosuchkey", "owner-1")
	assert.ErrorIs(t, err, ErrAPIKeyNotFound)
}

// ---------- IsAPIKey ----------

func TestAPIKeyService_IsAPIKey(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	assert.True(t, svc.IsAPIKey("sfx_whatever"))
	assert.False(t, svc.IsAPIKey("eyJhbGciOiJIUzI1NiJ9.x.y"))
	assert.False(t, svc.IsAPIKey(""))
}

// ---------- ListForOwner ----------

func TestAPIKeyService_ListForOwner(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	_, _, err := svc.Create(ctx, "owner-1", "a", nil)
	require.NoError(t, err)
	_, _, err = svc.Create(ctx, "owner-1", "b", nil)
	require.NoError(t, err)

	keys, err := svc.ListForOwner(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

// ---------- Rejection cost ----------

// An unknown public id must pay the same hashing cost as a wrong secret, or
// response time tells a caller which public ids exist. The fast paths differ
// by six orders of magnitude without the decoy verification, so a generous
// ratio bound keeps this stable across machines.
func TestAPIKeyService_Validate_UnknownIDCostsLikeWrongSecret(t *testing.T) {
	svc, _ := newTestAPIKeyService()
	ctx := context.Background()

	_, fullKey, err := svc.Create(ctx, "owner-1", "ci", nil)
	require.NoError(t, err)
	wrongSecret := fullKey[:len(fullKey)-4] + "XXXX"
	unknownID := "sfx_" + platform.NewToken(publicIDLength) + "." + platform.NewToken(secretLength)

	start := time.Now()
	_, err = svc.Validate(ctx, wrongSecret)
	wrongDur := time.Since(start)
	require.ErrorIs(t, err, ErrInvalidAPIKey)

	start = time.Now()
	_, err = svc.Validate(ctx, unknownID)
	unknownDur := time.Since(start)
	require.ErrorIs(t, err, ErrInvalidAPIKey)

	assert.Greater(t, unknownDur*20, wrongDur,
		"unknown-id rejection (%v) must not be detectably cheaper than wrong-secret rejection (%v)",
		unknownDur, wrongDur)
}
