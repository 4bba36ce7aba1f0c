package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// Items and payers carry a position column so a payment round-trips with
// its original ordering intact; the settlement view depends on that order
// being stable.
const schema = `
CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tax INTEGER NOT NULL DEFAULT 0,
    tip INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS payers (
    id TEXT NOT NULL,
    payment_id TEXT NOT NULL,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (payment_id, id),
    FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    payment_id TEXT NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 1,
    price INTEGER NOT NULL,
    is_shared INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL,
    FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS item_payers (
    item_id TEXT NOT NULL,
    payer_id TEXT NOT NULL,
    PRIMARY KEY (item_id, payer_id),
    FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_payers_payment_id ON payers(payment_id);
CREATE INDEX IF NOT EXISTS idx_items_payment_id ON items(payment_id);
CREATE INDEX IF NOT EXISTS idx_item_payers_item_id ON item_payers(item_id);
CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
