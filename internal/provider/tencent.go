package provider

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// TencentProvider fetches quotes from the qt.gtimg.cn REST endpoint.
type TencentProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewTencentProvider creates a Tencent quote provider.
func NewTencentProvider(proxyURL string, timeout time.Duration) *TencentProvider {
	return &TencentProvider{
		BaseURL: "https://qt.gtimg.cn",
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *TencentProvider) Name() model.Source { return model.SourceTencent }

func (p *TencentProvider) FetchQuote(code string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/q=%s", p.BaseURL, PrefixedSymbol(code))
	resp, err := p.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("tencent fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tencent: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tencent read body: %w", err)
	}

	return parseTencentQuote(code, decodeGBK(raw))
}

// parseTencentQuote parses v_sh600000="1~浦发银行~600000~price~prev~open~vol~...";
// Fields of interest: 1 name, 3 price, 4 prev close, 5 open, 6 volume,
// 33 high, 34 low.
func parseTencentQuote(code, body string) (*model.Quote, error) {
	open := strings.Index(body, `"`)
	close_ := strings.LastIndex(body, `"`)
	if open < 0 || close_ <= open {
		return nil, fmt.Errorf("tencent: malformed payload")
	}
	fields := strings.Split(body[open+1:close_], "~")
	if len(fields) < 7 {
		return nil, fmt.Errorf("tencent: unexpected field count %d", len(fields))
	}

	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("tencent parse price: %w", err)
	}
	prevClose, _ := strconv.ParseFloat(fields[4], 64)
	openPrice, _ := strconv.ParseFloat(fields[5], 64)
	volume, _ := strconv.ParseFloat(fields[6], 64)

	var high, low float64
	if len(fields) > 34 {
		high, _ = strconv.ParseFloat(fields[33], 64)
		low, _ = strconv.ParseFloat(fields[34], 64)
	}

	changePct := 0.0
	if prevClose > 0 {
		changePct = (price - prevClose) / prevClose * 100
	}

	return &model.Quote{
		Source:    model.SourceTencent,
		Code:      code,
		Name:      fields[1],
		Price:     price,
		ChangePct: changePct,
		Volume:    volume,
		Open:      openPrice,
		High:      high,
		Low:       low,
		Timestamp: time.Now(),
	}, nil
}
