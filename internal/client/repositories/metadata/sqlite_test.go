package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:metadata?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	v, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGet_Overwrite(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("v1")))
	require.NoError(t, r.Set(ctx, "k", []byte("v2")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), v)
}

func TestSetMany_AllOrNothing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{
		"a": []byte("1"),
		"b": []byte("2"),
	}))

	a, err := r.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []byte("1"), a)
	b, err := r.Get(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, []byte("2"), b)
}

func TestDeleteMany_Clear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2"), "c": []byte("3")}))
	require.NoError(t, r.DeleteMany(ctx, "a", "b"))

	a, err := r.Get(ctx, "a")
	require.NoError(t, err)
	require.Nil(t, a)

	c, err := r.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []byte("3"), c)

	require.NoError(t, r.Clear(ctx))
	c, err = r.Get(ctx, "c")
	require.NoError(t, err)
	require.Nil(t, c)
}
