package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/studiofx/platform/internal/model"
)

var (
	// ErrDuplicatePublicID signals a public identifier collision on insert.
	// The generation strategy makes this vanishingly rare; callers retry
	// with a fresh identifier rather than surfacing the failure.
	ErrDuplicatePublicID = errors.New("api key public id already exists")

	// ErrAPIKeyNotFound signals that no key record carries the public id.
	ErrAPIKeyNotFound = errors.New("api key not found")

	// ErrNotKeyOwner signals a revoke attempt by someone other than the
	// key's owner.
	ErrNotKeyOwner = errors.New("api key belongs to another user")
)

// pgUniqueViolation is the Postgres error code for unique index violations.
const pgUniqueViolation = "23505"

// APIKeyStore owns all reads and writes of api_keys rows.
type APIKeyStore struct {
	db DB
}

func NewAPIKeyStore(db DB) *APIKeyStore {
	return &APIKeyStore{db: db}
}

// Insert persists a new key record and assigns its numeric id. A public_id
// collision maps to ErrDuplicatePublicID.
func (s *APIKeyStore) Insert(ctx context.Context, key *model.APIKey) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO api_keys (public_id, owner_id, name, secret_hash, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 RETURNING id, created_at`,
		key.PublicID, key.OwnerID, key.Name, key.SecretHash, key.ExpiresAt,
	).Scan(&key.ID, &key.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicatePublicID
		}
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// FindByPublicID returns the key record for a public identifier, or
// ErrAPIKeyNotFound.
func (s *APIKeyStore) FindByPublicID(ctx context.Context, publicID string) (*model.APIKey, error) {
	var k model.APIKey
	err := s.db.QueryRow(ctx,
		`SELECT id, public_id, owner_id, name, secret_hash, expires_at, revoked_at, last_used_at, created_at
		 FROM api_keys WHERE public_id = $1`, publicID,
	).Scan(&k.ID, &k.PublicID, &k.OwnerID, &k.Name, &k.SecretHash,
		&k.ExpiresAt, &k.RevokedAt, &k.LastUsedAt, &k.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAPIKeyNotFound
		}
		return nil, fmt.Errorf("find api key %s: %w", publicID, err)
	}
	return &k, nil
}

// FindAllByOwner returns every key record belonging to a user, newest first.
func (s *APIKeyStore) FindAllByOwner(ctx context.Context, ownerID string) ([]model.APIKey, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, public_id, owner_id, name, secret_hash, expires_at, revoked_at, last_used_at, created_at
		 FROM api_keys WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list api keys for %s: %w", ownerID, err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		if err := rows.Scan(&k.ID, &k.PublicID, &k.OwnerID, &k.Name, &k.SecretHash,
			&k.ExpiresAt, &k.RevokedAt, &k.LastUsedAt, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}
	return keys, nil
}

// MarkUsedNow stamps last_used_at. The field is diagnostic; concurrent
// updates for the same key race last-write-wins.
func (s *APIKeyStore) MarkUsedNow(ctx context.Context, publicID string) error {
	_, err := s.db.Exec(ctx,
		"UPDATE api_keys SET last_used_at = now() WHERE public_id = $1", publicID,
	)
	if err != nil {
		return fmt.Errorf("mark api key %s used: %w", publicID, err)
	}
	return nil
}

// MarkRevoked sets revoked_at if the record exists, belongs to ownerID, and
// is not already revoked. Revoking an already-revoked key succeeds without
// changing the original revocation time.
func (s *APIKeyStore) MarkRevoked(ctx context.Context, publicID, ownerID string) error {
	var recordOwner string
	var alreadyRevoked bool
	err := s.db.QueryRow(ctx,
		"SELECT owner_id, revoked_at IS NOT NULL FROM api_keys WHERE public_id = $1", publicID,
	).Scan(&recordOwner, &alreadyRevoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAPIKeyNotFound
		}
		return fmt.Errorf("find api key %s: %w", publicID, err)
	}

	if recordOwner != ownerID {
		return ErrNotKeyOwner
	}
	if alreadyRevoked {
		return nil
	}

	// The revoked_at IS NULL guard keeps the timestamp monotonic when two
	// revoke calls race.
	_, err = s.db.Exec(ctx,
		"UPDATE api_keys SET revoked_at = now() WHERE public_id = $1 AND revoked_at IS NULL", publicID,
	)
	if err != nil {
		return fmt.Errorf("revoke api key %s: %w", publicID, err)
	}
	return nil
}
