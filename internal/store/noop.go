package store

import "github.com/qq173681019/JericoNewStockSystem/internal/model"

// NoopStore is a no-op implementation used when SQLite is not configured.
// Reads return empty results and writes are discarded.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) AddWatch(_ *model.WatchlistItem) error    { return nil }
func (n *NoopStore) UpdateWatch(_ *model.WatchlistItem) error { return nil }
func (n *NoopStore) RemoveWatch(_ string) error               { return nil }
func (n *NoopStore) GetWatch(_ string) (*model.WatchlistItem, error) {
	return nil, ErrNotFound
}
func (n *NoopStore) ListWatchlist() ([]model.WatchlistItem, error) { return nil, nil }
func (n *NoopStore) RecordPrediction(_ *model.PredictionRecord) error {
	return nil
}
func (n *NoopStore) ListPredictions(_ string, _ int) ([]model.PredictionRecord, error) {
	return nil, nil
}
func (n *NoopStore) Close() error { return nil }
