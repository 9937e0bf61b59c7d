package provider

import (
	"net/http"
	"net/url"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// Provider is a single external quote source. Implementations make one
// attempt per call, bounded by the client timeout; they never retry.
type Provider interface {
	Name() model.Source
	FetchQuote(code string) (*model.Quote, error)
}

// HistoryProvider is implemented by providers that can serve daily bars.
// The date range is inclusive and bars are returned ascending by date.
type HistoryProvider interface {
	Provider
	FetchDailyBars(code string, start, end time.Time) ([]model.OHLCV, error)
}

// Board is one raw industry board entry before heat scoring.
type Board struct {
	Name      string
	ChangePct float64
}

// SectorProvider lists industry boards with their day change percentages.
type SectorProvider interface {
	FetchSectorBoards() ([]Board, error)
}

// newHTTPClient builds a client with a bounded timeout and optional proxy.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
