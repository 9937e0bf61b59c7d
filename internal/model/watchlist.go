package model

import "time"

// WatchlistItem is one tracked stock with its user-set price levels.
type WatchlistItem struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	TargetPrice float64   `json:"target_price,omitempty"`
	TargetDays  int       `json:"target_days,omitempty"`
	StopLoss    float64   `json:"stop_loss,omitempty"`
	StopProfit  float64   `json:"stop_profit,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PredictionRecord is one stored prediction for later accuracy review.
type PredictionRecord struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name,omitempty"`
	PredictionType string    `json:"prediction_type"`
	PredictedValue float64   `json:"prediction_value"`
	Direction      string    `json:"prediction_direction"`
	Confidence     float64   `json:"confidence_score"`
	ActualValue    float64   `json:"actual_value,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
