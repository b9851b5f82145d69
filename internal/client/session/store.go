// Package session is the single source of truth for "is the caller
// authenticated, and as whom". It persists the bearer token and the cached
// user snapshot under one shared expiry, sealed at rest, in the local
// metadata table.
//
// The cached user is display-only. Authorization is never decided from it;
// every privileged request re-sends the token and defers to the backend.
package session

import (
	"context"
	"time"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/metadata"
	"github.com/dsmolyakov/jobdeck/internal/cryptox"
	"github.com/dsmolyakov/jobdeck/internal/logging"
)

// DefaultTTL is the observed session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

const (
	keyToken   = "session.token"
	keyUser    = "session.user"
	keyExpires = "session.expires_at"
)

// Session is the authenticated identity held by the client. A zero Token
// means unauthenticated.
type Session struct {
	Token     string
	User      *models.User
	ExpiresAt time.Time
}

// Store reads and writes the persisted session.
//
// Contract:
//   - Read: returns the stored session, or a zero Session when absent,
//     expired, or corrupt. Damaged or expired records are cleared silently
//     and never surfaced as errors; only storage failures are returned.
//   - Write: persists token and user together under one expiry, atomically.
//   - Clear: removes token and user together, atomically.
//   - Token: TokenSource for the request gateway.
type Store interface {
	Read(ctx context.Context) (Session, error)
	Write(ctx context.Context, token string, user models.User, ttl time.Duration) error
	Clear(ctx context.Context) error
	Token(ctx context.Context) (string, error)
}

// SQLiteStore is the concrete Store over the metadata repository. Values
// are sealed with the device key before they touch disk.
type SQLiteStore struct {
	repo    metadata.Repository
	sealKey []byte
	log     logging.Logger
}

func NewSQLiteStore(repo metadata.Repository, sealKey []byte, log logging.Logger) *SQLiteStore {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &SQLiteStore{repo: repo, sealKey: sealKey, log: log}
}

func (s *SQLiteStore) Read(ctx context.Context) (Session, error) {
	tokenBlob, err := s.repo.Get(ctx, keyToken)
	if err != nil {
		return Session{}, err
	}
	userBlob, err := s.repo.Get(ctx, keyUser)
	if err != nil {
		return Session{}, err
	}
	expiresRaw, err := s.repo.Get(ctx, keyExpires)
	if err != nil {
		return Session{}, err
	}

	if tokenBlob == nil && userBlob == nil && expiresRaw == nil {
		return Session{}, nil
	}
	if tokenBlob == nil || userBlob == nil || expiresRaw == nil {
		// Partial record: treat as corrupt.
		return s.discard(ctx, "partial session record")
	}

	expiresAt, err := time.Parse(time.RFC3339, string(expiresRaw))
	if err != nil {
		return s.discard(ctx, "unparsable session expiry")
	}
	if time.Now().After(expiresAt) {
		return s.discard(ctx, "session expired")
	}

	var token string
	if err := cryptox.Open(tokenBlob, s.sealKey, &token); err != nil {
		return s.discard(ctx, "unreadable session token")
	}
	var user models.User
	if err := cryptox.Open(userBlob, s.sealKey, &user); err != nil {
		return s.discard(ctx, "unreadable session user")
	}

	return Session{Token: token, User: &user, ExpiresAt: expiresAt}, nil
}

func (s *SQLiteStore) Write(ctx context.Context, token string, user models.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	tokenBlob, err := cryptox.Seal(token, s.sealKey)
	if err != nil {
		return err
	}
	userBlob, err := cryptox.Seal(user, s.sealKey)
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(ttl).UTC().Format(time.RFC3339)

	return s.repo.SetMany(ctx, map[string][]byte{
		keyToken:   tokenBlob,
		keyUser:    userBlob,
		keyExpires: []byte(expiresAt),
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.repo.DeleteMany(ctx, keyToken, keyUser, keyExpires)
}

// Token implements the gateway's TokenSource.
func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	sess, err := s.Read(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// discard drops a damaged or expired record and reports "no session".
func (s *SQLiteStore) discard(ctx context.Context, reason string) (Session, error) {
	s.log.Warn(ctx, "discarding persisted session", "reason", reason)
	if err := s.Clear(ctx); err != nil {
		s.log.Error(ctx, "clearing persisted session", "error", err)
	}
	return Session{}, nil
}
