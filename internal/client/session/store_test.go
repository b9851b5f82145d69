package session

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dsmolyakov/jobdeck/internal/client/models"
	"github.com/dsmolyakov/jobdeck/internal/client/repositories/metadata"
	"github.com/dsmolyakov/jobdeck/internal/cryptox"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) (*SQLiteStore, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	secret, salt, err := cryptox.LoadOrCreateSecret(filepath.Join(t.TempDir(), "device.key"))
	require.NoError(t, err)

	store := NewSQLiteStore(metadata.NewSQLiteRepository(db), cryptox.DeriveSealKey(secret, salt), nil)
	return store, db
}

func TestReadWrite_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	user := models.User{ID: "u1", Name: "Jo", Email: "a@b.com", Phone: "555", HasCV: true}
	require.NoError(t, store.Write(ctx, "tok123", user, DefaultTTL))

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", sess.Token)
	require.NotNil(t, sess.User)
	require.Equal(t, user, *sess.User)
	require.WithinDuration(t, time.Now().Add(DefaultTTL), sess.ExpiresAt, time.Minute)
}

func TestRead_Absent(t *testing.T) {
	store, _ := setupStore(t)

	sess, err := store.Read(context.Background())
	require.NoError(t, err)
	require.Empty(t, sess.Token)
	require.Nil(t, sess.User)
}

func TestClear_RemovesBoth(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "tok123", models.User{ID: "u1"}, DefaultTTL))
	require.NoError(t, store.Clear(ctx))

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
	require.Nil(t, sess.User)
}

func TestRead_CorruptRecordSilentlyCleared(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "tok123", models.User{ID: "u1"}, DefaultTTL))

	// Damage the stored user blob directly.
	_, err := db.Exec(`UPDATE metadata SET value = ? WHERE key = ?`, []byte("garbage"), "session.user")
	require.NoError(t, err)

	sess, err := store.Read(ctx)
	require.NoError(t, err, "corrupt records must not surface as errors")
	require.Empty(t, sess.Token)

	// The damaged record is gone, not lingering.
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key LIKE 'session.%'`).Scan(&n))
	require.Zero(t, n)
}

func TestRead_ExpiredCleared(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "tok123", models.User{ID: "u1"}, time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
}

func TestRead_PartialRecordCleared(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "tok123", models.User{ID: "u1"}, DefaultTTL))
	_, err := db.Exec(`DELETE FROM metadata WHERE key = ?`, "session.expires_at")
	require.NoError(t, err)

	sess, err := store.Read(ctx)
	require.NoError(t, err)
	require.Empty(t, sess.Token)
}

func TestToken_Source(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, store.Write(ctx, "tok123", models.User{ID: "u1"}, DefaultTTL))
	tok, err = store.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)
}
