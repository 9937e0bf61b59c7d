package model

// Timeframe is the requested prediction horizon.
type Timeframe string

const (
	Timeframe30Min Timeframe = "30min"
	Timeframe1Hour Timeframe = "1hour"
	Timeframe1Day  Timeframe = "1day"
	Timeframe3Day  Timeframe = "3day"
	Timeframe30Day Timeframe = "30day"
)

// Action is the machine-readable trading recommendation.
type Action string

const (
	ActionStrongBuy  Action = "strong_buy"
	ActionBuy        Action = "buy"
	ActionHold       Action = "hold"
	ActionSell       Action = "sell"
	ActionStrongSell Action = "strong_sell"
)

// SubPrediction is one sub-model's predicted price path.
type SubPrediction struct {
	Prices []float64 `json:"prices"`
	Method string    `json:"method"`
}

// TradingSignal is the categorical recommendation derived from the ensemble.
type TradingSignal struct {
	Recommendation string  `json:"recommendation"`
	Action         Action  `json:"action"`
	Confidence     float64 `json:"confidence"`
	ExpectedChange float64 `json:"expected_change"`
}

// PredictionResult bundles all sub-model outputs with the ensemble path.
// This is a heuristic best-effort estimate, not a validated forecast.
type PredictionResult struct {
	Technical         SubPrediction `json:"technical"`
	MachineLearning   SubPrediction `json:"machine_learning"`
	SupportResistance SubPrediction `json:"support_resistance"`
	Ensemble          SubPrediction `json:"ensemble"`
	Confidence        float64       `json:"confidence"`
	PriceChangePcts   []float64     `json:"price_change_pcts"`
	Signal            TradingSignal `json:"trading_signal"`
}
