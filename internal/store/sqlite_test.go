package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestWatchlistCRUD(t *testing.T) {
	s := newTestStore(t)

	item := &model.WatchlistItem{
		Code:        "600519",
		Name:        "贵州茅台",
		TargetPrice: 1800,
		TargetDays:  30,
		StopLoss:    1500,
		StopProfit:  2000,
		Notes:       "长线观察",
	}
	require.NoError(t, s.AddWatch(item))
	assert.NotZero(t, item.ID)

	got, err := s.GetWatch("600519")
	require.NoError(t, err)
	assert.Equal(t, "贵州茅台", got.Name)
	assert.Equal(t, 1800.0, got.TargetPrice)
	assert.Equal(t, 30, got.TargetDays)

	item.TargetPrice = 1900
	require.NoError(t, s.UpdateWatch(item))
	got, err = s.GetWatch("600519")
	require.NoError(t, err)
	assert.Equal(t, 1900.0, got.TargetPrice)

	list, err := s.ListWatchlist()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.RemoveWatch("600519"))
	_, err = s.GetWatch("600519")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWatchlistDuplicateCode(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.AddWatch(&model.WatchlistItem{Code: "000001", Name: "平安银行"}))
	err := s.AddWatch(&model.WatchlistItem{Code: "000001", Name: "重复"})
	assert.Error(t, err)
}

func TestWatchlistUpdateMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateWatch(&model.WatchlistItem{Code: "999999"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.RemoveWatch("999999"), ErrNotFound)
}

func TestPredictionHistory(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordPrediction(&model.PredictionRecord{
			Code:           "600519",
			Name:           "贵州茅台",
			PredictionType: "3day",
			PredictedValue: 1850 + float64(i),
			Direction:      "up",
			Confidence:     0.72,
		}))
	}
	require.NoError(t, s.RecordPrediction(&model.PredictionRecord{
		Code:           "000001",
		PredictionType: "1day",
		PredictedValue: 11.2,
		Direction:      "down",
		Confidence:     0.55,
	}))

	records, err := s.ListPredictions("600519", 10)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, "600519", rec.Code)
		assert.False(t, rec.CreatedAt.IsZero())
	}

	limited, err := s.ListPredictions("600519", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestMigrateAddsTargetDays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "legacy.db")

	s1, err := NewSQLiteStore(path)
	require.NoError(t, err)

	// Drop the column by recreating the table without it, simulating a
	// database created before target_days existed.
	_, err = s1.db.Exec(`DROP TABLE watchlist`)
	require.NoError(t, err)
	_, err = s1.db.Exec(`CREATE TABLE watchlist (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		code         TEXT NOT NULL UNIQUE,
		name         TEXT,
		target_price REAL,
		stop_loss    REAL,
		stop_profit  REAL,
		notes        TEXT,
		created_at   INTEGER NOT NULL,
		updated_at   INTEGER NOT NULL
	)`)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer s2.Close()

	item := &model.WatchlistItem{Code: "600000", TargetDays: 15}
	require.NoError(t, s2.AddWatch(item))
	got, err := s2.GetWatch("600000")
	require.NoError(t, err)
	assert.Equal(t, 15, got.TargetDays)
}
