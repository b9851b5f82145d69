package snapshots

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dsmolyakov/jobdeck/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:snapshots?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE snapshots (
  name     TEXT PRIMARY KEY,
  data     BLOB NOT NULL,
  saved_at TIMESTAMP NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestLoad_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	_, _, err := r.Load(context.Background(), "education")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSaveLoad_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "education", []byte(`[{"id":"e1"}]`)))
	require.NoError(t, r.Save(ctx, "education", []byte(`[{"id":"e2"}]`)))

	data, savedAt, err := r.Load(ctx, "education")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"e2"}]`, string(data))
	require.False(t, savedAt.IsZero())
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, "jobs", []byte(`[]`)))
	require.NoError(t, r.Delete(ctx, "jobs"))
	_, _, err := r.Load(ctx, "jobs")
	require.ErrorIs(t, err, common.ErrorNotFound)
}
