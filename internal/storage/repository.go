package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fundtrackr/internal/core"
)

// SQLiteRepository is the transaction store. It is the only stateful
// shared resource in the system; atomicity is delegated to SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert persists a transaction and returns its assigned ID. A
// transaction that already carries an ID replaces the existing row
// (replace-on-conflicting-id insert semantics).
func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	if t.ID != 0 {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO transactions (id, title, amount, date_ms, category, kind)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Title, t.Amount.String(), t.Date.UnixMilli(), t.Category, string(t.Kind))
		if err != nil {
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		return t.ID, nil
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (title, amount, date_ms, category, kind)
		 VALUES (?, ?, ?, ?, ?)`,
		t.Title, t.Amount.String(), t.Date.UnixMilli(), t.Category, string(t.Kind))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"title", t.Title,
		"amount", t.Amount.String(),
		"category", t.Category,
		"kind", t.Kind)

	return id, nil
}

// Update rewrites an existing transaction in place.
func (r *SQLiteRepository) Update(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET title = ?, amount = ?, date_ms = ?, category = ?, kind = ?
		 WHERE id = ?`,
		t.Title, t.Amount.String(), t.Date.UnixMilli(), t.Category, string(t.Kind), t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a transaction. Deletion is immediate and irreversible.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Get retrieves a single transaction by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, amount, date_ms, category, kind FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return t, nil
}

// ListAll returns a snapshot of every transaction ordered by date
// descending with ID descending as the deterministic tie-break.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, amount, date_ms, category, kind
		 FROM transactions ORDER BY date_ms DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t      core.Transaction
		amount string
		dateMs int64
		kind   string
	)
	if err := row.Scan(&t.ID, &t.Title, &amount, &dateMs, &t.Category, &kind); err != nil {
		return core.Transaction{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	k, err := core.ParseKind(kind)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse kind %q: %w", kind, err)
	}
	t.Amount = d
	t.Date = time.UnixMilli(dateMs).UTC()
	t.Kind = k
	return t, nil
}
