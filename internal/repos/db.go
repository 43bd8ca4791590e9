package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Single connection: sqlite has one writer anyway, and it keeps
	// ':memory:' databases from splitting across pool connections.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Monetary columns are TEXT so decimal strings round-trip without float
// coercion; all money arithmetic happens in Go.
func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  size TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL,
  cost TEXT NOT NULL,
  supplier TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_owner_name ON products(user_id, LOWER(name));

-- Sales and credits keep a weak product reference: deleting a product
-- leaves historical transactions in place.
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  buyer TEXT NOT NULL,
  date TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  total_price TEXT NOT NULL,
  receipt_id TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_sales_user_date ON sales(user_id, date);
CREATE INDEX IF NOT EXISTS idx_sales_user_buyer ON sales(user_id, buyer);

CREATE TABLE IF NOT EXISTS credits(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  buyer TEXT NOT NULL,
  date TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  amount_paid TEXT NOT NULL DEFAULT '0',
  total_debt TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','settled')),
  receipt_id TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_credits_user_date ON credits(user_id, date);
CREATE INDEX IF NOT EXISTS idx_credits_user_status ON credits(user_id, status);
`
	_, err := db.Exec(schema)
	return err
}
