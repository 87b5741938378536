// Package persistence provides SQLite-based save/load for the game aggregate.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/oreworks/internal/engine"
	"github.com/talgya/oreworks/internal/exact"
	"github.com/talgya/oreworks/internal/goods"
	"github.com/talgya/oreworks/internal/producers"
)

// DB wraps a SQLite connection for game state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS inventory (
		good TEXT PRIMARY KEY,
		amount TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS elements (
		handle INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		good TEXT NOT NULL,
		title TEXT NOT NULL,
		open INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS game_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// HasState reports whether the database holds a saved game.
func (db *DB) HasState() bool {
	_, err := db.GetMeta("next_handle")
	return err == nil
}

// SaveMeta stores a key-value pair in game metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM game_meta WHERE key = ?", key)
	return value, err
}

// SaveState performs a full save of the aggregate: inventory, elements, and
// counters. Quantities are stored in exact num/den text form, goods and
// producer kinds by their stable keys. Each save is stamped with a fresh
// session id.
func (db *DB) SaveState(st *engine.State) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM inventory"); err != nil {
		return err
	}
	for _, h := range st.Inventory.Sorted() {
		_, err := tx.Exec(
			"INSERT INTO inventory (good, amount) VALUES (?, ?)",
			h.Good.Properties().Key, exact.Format(h.Amount),
		)
		if err != nil {
			return fmt.Errorf("insert inventory %s: %w", h.Good, err)
		}
	}

	if _, err := tx.Exec("DELETE FROM elements"); err != nil {
		return err
	}
	for _, el := range st.Elements {
		open := 0
		if el.Open {
			open = 1
		}
		_, err := tx.Exec(
			"INSERT INTO elements (handle, kind, good, title, open) VALUES (?, ?, ?, ?, ?)",
			el.Handle, el.Producer.Kind.Key(), el.Producer.Good.Properties().Key, el.Title, open,
		)
		if err != nil {
			return fmt.Errorf("insert element %d: %w", el.Handle, err)
		}
	}

	meta := map[string]string{
		"next_handle": strconv.FormatUint(st.NextHandle(), 10),
		"tick_count":  strconv.FormatUint(st.TickCount, 10),
		"session_id":  uuid.New().String(),
		"saved_at":    time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO game_meta (key, value) VALUES (?, ?)", k, v,
		); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("game state saved", "goods", len(st.Inventory), "elements", len(st.Elements), "tick", st.TickCount)
	return nil
}

type inventoryRow struct {
	Good   string `db:"good"`
	Amount string `db:"amount"`
}

type elementRow struct {
	Handle uint64 `db:"handle"`
	Kind   string `db:"kind"`
	Good   string `db:"good"`
	Title  string `db:"title"`
	Open   int    `db:"open"`
}

// LoadState fills st — a freshly constructed default aggregate — from the
// database. Goods missing from the save keep their catalog-default zero;
// rows naming goods or kinds the catalog no longer declares are skipped;
// malformed amounts are skipped. The clock is left rebased at whatever
// timestamp st was constructed with, so downtime produces no tick burst.
func (db *DB) LoadState(st *engine.State) error {
	var invRows []inventoryRow
	if err := db.conn.Select(&invRows, "SELECT good, amount FROM inventory"); err != nil {
		return fmt.Errorf("load inventory: %w", err)
	}
	for _, row := range invRows {
		g, ok := goods.ByKey(row.Good)
		if !ok {
			slog.Warn("skipping unknown good in save", "good", row.Good)
			continue
		}
		amount, err := exact.Parse(row.Amount)
		if err != nil {
			slog.Warn("skipping malformed quantity in save", "good", row.Good, "amount", row.Amount)
			continue
		}
		st.Inventory[g] = amount
	}

	var elRows []elementRow
	if err := db.conn.Select(&elRows, "SELECT handle, kind, good, title, open FROM elements"); err != nil {
		return fmt.Errorf("load elements: %w", err)
	}
	for _, row := range elRows {
		kind, ok := producers.KindByKey(row.Kind)
		if !ok {
			slog.Warn("skipping unknown producer kind in save", "kind", row.Kind)
			continue
		}
		g, ok := goods.ByKey(row.Good)
		if !ok {
			slog.Warn("skipping producer with unknown good in save", "good", row.Good)
			continue
		}
		st.Elements[row.Handle] = &engine.Element{
			Handle:   row.Handle,
			Producer: producers.Producer{Kind: kind, Good: g},
			Title:    row.Title,
			Open:     row.Open != 0,
		}
	}

	var next uint64
	if v, err := db.GetMeta("next_handle"); err == nil {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			next = n
		}
	}
	st.RestoreHandles(next)

	if v, err := db.GetMeta("tick_count"); err == nil {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			st.TickCount = n
		}
	}

	slog.Info("game state restored", "goods", len(invRows), "elements", len(st.Elements), "tick", st.TickCount)
	return nil
}
