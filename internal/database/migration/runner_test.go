package migration

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placement-pro/internal/database"
	"placement-pro/internal/database/sqlite"
	"placement-pro/migrations"
)

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
		"V1__first.sql":  {Data: []byte("  CREATE TABLE a (id INTEGER);\n")},
		"README.md":      {Data: []byte("ignored")},
		"v3__lower.sql":  {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "CREATE TABLE a (id INTEGER);", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
	assert.Equal(t, int64(2), migs[1].Version)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = Load(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoad_Embedded(t *testing.T) {
	migs, err := Load(migrations.FS)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migs), 2)
	assert.Equal(t, "skill_catalog", migs[0].Name)
}

func openSQLite(t *testing.T) database.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunner_SQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	r := Runner{FS: migrations.FS, Driver: database.DriverSQLite}

	applied, err := r.Run(ctx, db.SQLDB())
	require.NoError(t, err)
	assert.NotEmpty(t, applied)

	again, err := r.Run(ctx, db.SQLDB())
	require.NoError(t, err)
	assert.Empty(t, again)

	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM schema_migrations`).Scan(&n))
	assert.Equal(t, len(applied), n)

	_, err = db.Exec(ctx, `INSERT INTO skill_dimensions (position, name) VALUES ($1, $2)`, 0, "Python")
	require.NoError(t, err)
}

func TestRunner_ChecksumMismatch(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	r := Runner{FS: fstest.MapFS{"V1__t.sql": {Data: []byte("CREATE TABLE t (id INTEGER);")}}, Driver: database.DriverSQLite}
	_, err := r.Run(ctx, db.SQLDB())
	require.NoError(t, err)

	r.FS = fstest.MapFS{"V1__t.sql": {Data: []byte("CREATE TABLE t (id INTEGER, name TEXT);")}}
	_, err = r.Run(ctx, db.SQLDB())
	assert.ErrorContains(t, err, "checksum mismatch")
}

func TestRunner_UnknownDriver(t *testing.T) {
	db := openSQLite(t)
	_, err := Runner{FS: migrations.FS, Driver: "mysql"}.Run(context.Background(), db.SQLDB())
	assert.Error(t, err)

	_, err = Runner{}.Run(context.Background(), nil)
	assert.Error(t, err)
}
