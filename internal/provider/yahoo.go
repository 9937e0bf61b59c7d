package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// YahooProvider is the international fallback, using the Yahoo Finance
// chart API with .SS/.SZ suffixed tickers.
type YahooProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		BaseURL: "https://query1.finance.yahoo.com",
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *YahooProvider) Name() model.Source { return model.SourceYahoo }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				Symbol             string  `json:"symbol"`
				LongName           string  `json:"longName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) fetchChart(symbol, query string) (*yahooChart, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.BaseURL, url.PathEscape(symbol), query)
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}
	return &chart, nil
}

func chartBars(chart *yahooChart) []model.OHLCV {
	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	// Truncated payloads ship quote arrays shorter than the timestamp
	// list; only walk indexes every array actually has.
	n := len(result.Timestamp)
	for _, arr := range [][]interface{}{quote.Open, quote.High, quote.Low, quote.Close, quote.Volume} {
		if len(arr) < n {
			n = len(arr)
		}
	}
	bars := make([]model.OHLCV, 0, n)
	for i, ts := range result.Timestamp[:n] {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

func (p *YahooProvider) FetchQuote(code string) (*model.Quote, error) {
	chart, err := p.fetchChart(YahooSymbol(code), "interval=1d&range=1d")
	if err != nil {
		return nil, err
	}
	meta := chart.Chart.Result[0].Meta
	if meta.RegularMarketPrice == 0 {
		return nil, fmt.Errorf("yahoo: no price for %s", code)
	}

	changePct := 0.0
	if meta.ChartPreviousClose > 0 {
		changePct = (meta.RegularMarketPrice - meta.ChartPreviousClose) / meta.ChartPreviousClose * 100
	}

	q := &model.Quote{
		Source:    model.SourceYahoo,
		Code:      code,
		Name:      meta.LongName,
		Price:     meta.RegularMarketPrice,
		ChangePct: changePct,
		Timestamp: time.Now(),
	}
	if bars := chartBars(chart); len(bars) > 0 {
		last := bars[len(bars)-1]
		q.Open = last.Open
		q.High = last.High
		q.Low = last.Low
		q.Volume = last.Volume
	}
	return q, nil
}

// FetchDailyBars returns daily bars for the inclusive date range.
func (p *YahooProvider) FetchDailyBars(code string, start, end time.Time) ([]model.OHLCV, error) {
	// period2 is exclusive upstream; push it one day out to keep end inclusive.
	query := fmt.Sprintf("interval=1d&period1=%d&period2=%d",
		start.Unix(), end.AddDate(0, 0, 1).Unix())
	chart, err := p.fetchChart(YahooSymbol(code), query)
	if err != nil {
		return nil, err
	}
	bars := chartBars(chart)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: no bars for %s", code)
	}
	return bars, nil
}
