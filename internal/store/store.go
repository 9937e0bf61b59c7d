package store

import "github.com/qq173681019/JericoNewStockSystem/internal/model"

// Store persists the watchlist and the prediction history.
type Store interface {
	AddWatch(item *model.WatchlistItem) error
	UpdateWatch(item *model.WatchlistItem) error
	RemoveWatch(code string) error
	GetWatch(code string) (*model.WatchlistItem, error)
	ListWatchlist() ([]model.WatchlistItem, error)

	RecordPrediction(rec *model.PredictionRecord) error
	ListPredictions(code string, limit int) ([]model.PredictionRecord, error)

	Close() error
}
