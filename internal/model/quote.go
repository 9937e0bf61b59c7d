package model

import "time"

// Source identifies which data provider produced a quote.
type Source string

const (
	SourceSina      Source = "sina"
	SourceTencent   Source = "tencent"
	SourceEastMoney Source = "eastmoney"
	SourceNetEase   Source = "netease"
	SourceYahoo     Source = "yahoo"
)

// Quote is a point-in-time price snapshot for one stock from one provider.
// Quotes are constructed per request and never cached.
type Quote struct {
	Source    Source    `json:"source"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ChangePct float64   `json:"change_pct"`
	Volume    float64   `json:"volume"`
	Open      float64   `json:"open,omitempty"`
	High      float64   `json:"high,omitempty"`
	Low       float64   `json:"low,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
