package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"storefront/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T, path string) SQLIface {
	t.Helper()
	db, err := InitDB(utils.DatabaseConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitDB_CreatesFileAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db := openTestDB(t, path)

	_, err := os.Stat(path)
	require.NoError(t, err, "database file was not created")

	ctx := context.Background()
	for _, table := range []string{"users", "products", "orders"} {
		var name string
		err := db.QueryRow(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s missing", table)
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	first, err := InitDB(utils.DatabaseConfig{Path: path})
	require.NoError(t, err)
	_, err = first.Exec(context.Background(),
		`INSERT INTO products (name, price, quantity) VALUES ('Widget', 9.99, 5)`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestDB(t, path)

	var count int
	require.NoError(t, second.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInitDB_EmptyPath(t *testing.T) {
	_, err := InitDB(utils.DatabaseConfig{})
	assert.Error(t, err)
}

func TestSchema_RejectsNegativeValues(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "app.db"))
	ctx := context.Background()

	_, err := db.Exec(ctx, `INSERT INTO products (name, price, quantity) VALUES ('x', -1, 1)`)
	assert.Error(t, err, "negative price accepted")

	_, err = db.Exec(ctx, `INSERT INTO products (name, price, quantity) VALUES ('x', 1, -1)`)
	assert.Error(t, err, "negative quantity accepted")

	_, err = db.Exec(ctx, `INSERT INTO orders (user_id, product_id, quantity, total_price) VALUES (1, 1, 0, 0)`)
	assert.Error(t, err, "zero order quantity accepted")

	_, err = db.Exec(ctx, `INSERT INTO users (username, password, role) VALUES ('u', x'00', 'root')`)
	assert.Error(t, err, "unknown role accepted")
}

func TestSchema_AllowsDanglingOrders(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "app.db"))

	_, err := db.Exec(context.Background(),
		`INSERT INTO orders (user_id, product_id, quantity, total_price) VALUES (99, 99, 1, 1.5)`)
	assert.NoError(t, err)
}

func TestDB_Transaction(t *testing.T) {
	db := openTestDB(t, filepath.Join(t.TempDir(), "app.db"))
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO products (name, price, quantity) VALUES ('a', 1, 1)`)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	var count int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 0, count)
	assert.NoError(t, db.Ping(ctx))
}
