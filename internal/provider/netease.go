package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// NetEaseProvider fetches quotes from the money.126.net JSONP feed.
type NetEaseProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewNetEaseProvider creates a NetEase quote provider.
func NewNetEaseProvider(proxyURL string, timeout time.Duration) *NetEaseProvider {
	return &NetEaseProvider{
		BaseURL: "http://api.money.126.net",
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *NetEaseProvider) Name() model.Source { return model.SourceNetEase }

// neteaseQuote is one entry of the feed payload.
type neteaseQuote struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Percent float64 `json:"percent"` // fraction, e.g. 0.0123
	Open    float64 `json:"open"`
	High    float64 `json:"high"`
	Low     float64 `json:"low"`
	Volume  float64 `json:"volume"`
}

func (p *NetEaseProvider) FetchQuote(code string) (*model.Quote, error) {
	symbol := NetEaseSymbol(code)
	u := fmt.Sprintf("%s/data/feed/%s,money.api", p.BaseURL, symbol)
	resp, err := p.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("netease fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("netease: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("netease read body: %w", err)
	}

	// Strip the _ntes_quote_callback( ... ); JSONP wrapper.
	body := string(raw)
	open := strings.Index(body, "(")
	close_ := strings.LastIndex(body, ")")
	if open >= 0 && close_ > open {
		body = body[open+1 : close_]
	}

	var feed map[string]neteaseQuote
	if err := json.Unmarshal([]byte(body), &feed); err != nil {
		return nil, fmt.Errorf("netease decode: %w", err)
	}
	q, ok := feed[symbol]
	if !ok {
		return nil, fmt.Errorf("netease: no data for %s", code)
	}

	return &model.Quote{
		Source:    model.SourceNetEase,
		Code:      code,
		Name:      q.Name,
		Price:     q.Price,
		ChangePct: q.Percent * 100,
		Volume:    q.Volume,
		Open:      q.Open,
		High:      q.High,
		Low:       q.Low,
		Timestamp: time.Now(),
	}, nil
}
