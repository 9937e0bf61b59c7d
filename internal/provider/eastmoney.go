package provider

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// EastMoneyProvider fetches quotes, daily history, and industry boards from
// the push2 bulk API. Prices arrive scaled by 100 (fen).
type EastMoneyProvider struct {
	BaseURL     string // quote and board endpoints
	HistBaseURL string // kline endpoint
	Client      *http.Client
}

// NewEastMoneyProvider creates an EastMoney provider.
func NewEastMoneyProvider(proxyURL string, timeout time.Duration) *EastMoneyProvider {
	return &EastMoneyProvider{
		BaseURL:     "http://push2.eastmoney.com",
		HistBaseURL: "http://push2his.eastmoney.com",
		Client:      newHTTPClient(proxyURL, timeout),
	}
}

func (p *EastMoneyProvider) Name() model.Source { return model.SourceEastMoney }

// toFloat converts the loosely typed push2 JSON values ("-" when halted).
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func (p *EastMoneyProvider) FetchQuote(code string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/api/qt/stock/get?secid=%s&fields=f43,f44,f45,f46,f47,f48,f57,f58,f169",
		p.BaseURL, SecID(code))
	resp, err := p.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("eastmoney fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney: status %d", resp.StatusCode)
	}

	var payload struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("eastmoney decode: %w", err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("eastmoney: no data for %s", code)
	}

	name, _ := payload.Data["f58"].(string)
	return &model.Quote{
		Source: model.SourceEastMoney,
		Code:   code,
		Name:   name,
		// Prices come in fen; change pct is scaled the same way.
		Price:     toFloat(payload.Data["f43"]) / 100,
		ChangePct: toFloat(payload.Data["f169"]) / 100,
		Volume:    toFloat(payload.Data["f47"]),
		High:      toFloat(payload.Data["f44"]) / 100,
		Low:       toFloat(payload.Data["f45"]) / 100,
		Open:      toFloat(payload.Data["f46"]) / 100,
		Timestamp: time.Now(),
	}, nil
}

// FetchDailyBars returns forward-adjusted daily klines, inclusive range.
func (p *EastMoneyProvider) FetchDailyBars(code string, start, end time.Time) ([]model.OHLCV, error) {
	u := fmt.Sprintf("%s/api/qt/stock/kline/get?secid=%s&klt=101&fqt=1&beg=%s&end=%s"+
		"&fields1=f1,f2,f3&fields2=f51,f52,f53,f54,f55,f56",
		p.HistBaseURL, SecID(code), start.Format("20060102"), end.Format("20060102"))
	resp, err := p.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("eastmoney kline fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney kline: status %d", resp.StatusCode)
	}

	var payload struct {
		Data *struct {
			Klines []string `json:"klines"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("eastmoney kline decode: %w", err)
	}
	if payload.Data == nil || len(payload.Data.Klines) == 0 {
		return nil, fmt.Errorf("eastmoney kline: no data for %s", code)
	}

	bars := make([]model.OHLCV, 0, len(payload.Data.Klines))
	for _, line := range payload.Data.Klines {
		// "2024-01-02,open,close,high,low,volume"
		fields := strings.Split(line, ",")
		if len(fields) < 6 {
			continue
		}
		t, err := time.Parse("2006-01-02", fields[0])
		if err != nil {
			continue
		}
		o, _ := strconv.ParseFloat(fields[1], 64)
		c, _ := strconv.ParseFloat(fields[2], 64)
		h, _ := strconv.ParseFloat(fields[3], 64)
		l, _ := strconv.ParseFloat(fields[4], 64)
		v, _ := strconv.ParseFloat(fields[5], 64)
		bars = append(bars, model.OHLCV{Time: t, Open: o, High: h, Low: l, Close: c, Volume: v})
	}
	return bars, nil
}

// FetchSectorBoards lists industry concept boards with their day change.
func (p *EastMoneyProvider) FetchSectorBoards() ([]Board, error) {
	u := fmt.Sprintf("%s/api/qt/clist/get?pn=1&pz=200&po=1&fid=f3&fs=m:90+t:2&fields=f3,f14", p.BaseURL)
	resp, err := p.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("eastmoney boards fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("eastmoney boards: status %d", resp.StatusCode)
	}

	var payload struct {
		Data *struct {
			Diff []struct {
				ChangePct interface{} `json:"f3"`
				Name      string      `json:"f14"`
			} `json:"diff"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("eastmoney boards decode: %w", err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("eastmoney boards: no data")
	}

	boards := make([]Board, 0, len(payload.Data.Diff))
	for _, d := range payload.Data.Diff {
		if d.Name == "" {
			continue
		}
		boards = append(boards, Board{Name: d.Name, ChangePct: toFloat(d.ChangePct)})
	}
	return boards, nil
}
