package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"shopbook/internal/domain"
	"shopbook/internal/repos"
	"shopbook/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO users(id, name, email, password_hash) VALUES('u-1','Ama','ama@shop.test','x')`)
	require.NoError(t, err)
	return db
}

func seedProduct(t *testing.T, db *sqlx.DB, id string, price, cost string, stock int) domain.Product {
	t.Helper()
	_, err := db.Exec(`
	  INSERT INTO products(id, user_id, name, price, cost, stock)
	  VALUES(?, 'u-1', ?, ?, ?, ?)
	`, id, "product-"+id, price, cost, stock)
	require.NoError(t, err)

	p, err := repos.NewProductRepo(db).Get(id)
	require.NoError(t, err)
	return p
}

func stockOf(t *testing.T, db *sqlx.DB, id string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT stock FROM products WHERE id = ?`, id))
	return n
}

func TestStockService_ReserveAndRelease(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 50)
	stock := services.NewStockService(db)

	require.NoError(t, stock.Reserve("p-1", 40))
	require.Equal(t, 10, stockOf(t, db, "p-1"))

	// second reservation exceeds what is left; stock must be untouched
	err := stock.Reserve("p-1", 30)
	require.ErrorIs(t, err, services.ErrOutOfStock)
	require.Equal(t, 10, stockOf(t, db, "p-1"))

	require.NoError(t, stock.Release("p-1", 40))
	require.Equal(t, 50, stockOf(t, db, "p-1"))
}

func TestStockService_ReserveExactlyAll(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 7)
	stock := services.NewStockService(db)

	require.NoError(t, stock.Reserve("p-1", 7))
	require.Equal(t, 0, stockOf(t, db, "p-1"))
	require.ErrorIs(t, stock.Reserve("p-1", 1), services.ErrOutOfStock)
}

func TestStockService_CorrectUndoThenRedo(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 10)
	stock := services.NewStockService(db)

	// a transaction took all 10 units
	require.NoError(t, stock.Reserve("p-1", 10))
	require.Equal(t, 0, stockOf(t, db, "p-1"))

	// shrinking it to 5 succeeds even though free stock is exhausted:
	// the undo frees 10 units before the redo is tested
	require.NoError(t, stock.Correct("p-1", 10, 5))
	require.Equal(t, 5, stockOf(t, db, "p-1"))

	// growing past what the undo frees still fails, atomically
	require.ErrorIs(t, stock.Correct("p-1", 5, 11), services.ErrOutOfStock)
	require.Equal(t, 5, stockOf(t, db, "p-1"))
}

func TestStockService_CorrectSameQuantityIsNoOp(t *testing.T) {
	db := memdb(t)
	seedProduct(t, db, "p-1", "10", "6", 25)
	stock := services.NewStockService(db)

	require.NoError(t, stock.Reserve("p-1", 15))
	require.NoError(t, stock.Correct("p-1", 15, 15))
	require.Equal(t, 10, stockOf(t, db, "p-1"))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
