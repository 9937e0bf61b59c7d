package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// SQLiteStore persists watchlist entries and prediction history to a
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// ErrNotFound is returned when a watchlist code does not exist.
var ErrNotFound = fmt.Errorf("not found")

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (web reads while the
	// scheduler writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlist (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			code         TEXT NOT NULL UNIQUE,
			name         TEXT,
			target_price REAL,
			stop_loss    REAL,
			stop_profit  REAL,
			notes        TEXT,
			created_at   INTEGER NOT NULL,
			updated_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_code ON watchlist(code)`,

		`CREATE TABLE IF NOT EXISTS prediction_history (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			code             TEXT NOT NULL,
			name             TEXT,
			prediction_type  TEXT,
			predicted_value  REAL,
			direction        TEXT,
			confidence       REAL,
			actual_value     REAL,
			notes            TEXT,
			created_at       INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_code ON prediction_history(code)`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_ts ON prediction_history(created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}

	// target_days arrived after the first schema; add it to databases
	// created before it existed.
	if err := s.addColumnIfMissing("watchlist", "target_days", "INTEGER DEFAULT 0"); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) addColumnIfMissing(table, column, decl string) error {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scan table_info: %w", err)
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl)); err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	log.Printf("[INFO] migrated: added column %s.%s", table, column)
	return nil
}

func (s *SQLiteStore) AddWatch(item *model.WatchlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO watchlist
		(code, name, target_price, target_days, stop_loss, stop_profit, notes, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		item.Code, item.Name, item.TargetPrice, item.TargetDays,
		item.StopLoss, item.StopProfit, item.Notes, now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert watch %s: %w", item.Code, err)
	}
	item.ID, _ = res.LastInsertId()
	item.CreatedAt = now
	item.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) UpdateWatch(item *model.WatchlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`UPDATE watchlist SET
		name=?, target_price=?, target_days=?, stop_loss=?, stop_profit=?, notes=?, updated_at=?
		WHERE code=?`,
		item.Name, item.TargetPrice, item.TargetDays,
		item.StopLoss, item.StopProfit, item.Notes, now.Unix(), item.Code,
	)
	if err != nil {
		return fmt.Errorf("update watch %s: %w", item.Code, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	item.UpdatedAt = now
	return nil
}

func (s *SQLiteStore) RemoveWatch(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM watchlist WHERE code=?`, code)
	if err != nil {
		return fmt.Errorf("delete watch %s: %w", code, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) GetWatch(code string) (*model.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT id, code, name, target_price, target_days,
		stop_loss, stop_profit, notes, created_at, updated_at
		FROM watchlist WHERE code=?`, code)

	item, err := scanWatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get watch %s: %w", code, err)
	}
	return item, nil
}

func (s *SQLiteStore) ListWatchlist() ([]model.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, code, name, target_price, target_days,
		stop_loss, stop_profit, notes, created_at, updated_at
		FROM watchlist ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	var items []model.WatchlistItem
	for rows.Next() {
		item, err := scanWatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan watchlist: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWatch(row rowScanner) (*model.WatchlistItem, error) {
	var item model.WatchlistItem
	var created, updated int64
	err := row.Scan(&item.ID, &item.Code, &item.Name, &item.TargetPrice,
		&item.TargetDays, &item.StopLoss, &item.StopProfit, &item.Notes,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = time.Unix(created, 0)
	item.UpdatedAt = time.Unix(updated, 0)
	return &item, nil
}

func (s *SQLiteStore) RecordPrediction(rec *model.PredictionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO prediction_history
		(code, name, prediction_type, predicted_value, direction, confidence, actual_value, notes, created_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		rec.Code, rec.Name, rec.PredictionType, rec.PredictedValue,
		rec.Direction, rec.Confidence, rec.ActualValue, rec.Notes, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert prediction %s: %w", rec.Code, err)
	}
	rec.ID, _ = res.LastInsertId()
	rec.CreatedAt = now
	return nil
}

func (s *SQLiteStore) ListPredictions(code string, limit int) ([]model.PredictionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT id, code, name, prediction_type, predicted_value,
		direction, confidence, actual_value, notes, created_at
		FROM prediction_history WHERE code=? ORDER BY created_at DESC LIMIT ?`,
		code, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions %s: %w", code, err)
	}
	defer rows.Close()

	var records []model.PredictionRecord
	for rows.Next() {
		var rec model.PredictionRecord
		var created int64
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Name, &rec.PredictionType,
			&rec.PredictedValue, &rec.Direction, &rec.Confidence,
			&rec.ActualValue, &rec.Notes, &created); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
