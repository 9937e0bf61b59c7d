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

// SinaProvider fetches quotes from the Sina plain-text hq endpoint.
// Fastest of the chain: a single GET returning one comma-separated line.
type SinaProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewSinaProvider creates a Sina quote provider with optional proxy support.
func NewSinaProvider(proxyURL string, timeout time.Duration) *SinaProvider {
	return &SinaProvider{
		BaseURL: "https://hq.sinajs.cn",
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

func (p *SinaProvider) Name() model.Source { return model.SourceSina }

func (p *SinaProvider) FetchQuote(code string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/list=%s", p.BaseURL, PrefixedSymbol(code))
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	// Sina rejects requests without a finance referer.
	req.Header.Set("Referer", "https://finance.sina.com.cn")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sina fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sina: status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sina read body: %w", err)
	}

	return parseSinaQuote(code, decodeGBK(raw))
}

// parseSinaQuote parses a line of the form
// var hq_str_sh600000="浦发银行,open,prev,price,high,low,...";
func parseSinaQuote(code, body string) (*model.Quote, error) {
	open := strings.Index(body, `"`)
	close_ := strings.LastIndex(body, `"`)
	if open < 0 || close_ <= open {
		return nil, fmt.Errorf("sina: malformed payload")
	}
	fields := strings.Split(body[open+1:close_], ",")
	if len(fields) < 9 {
		return nil, fmt.Errorf("sina: unexpected field count %d", len(fields))
	}

	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("sina parse price: %w", err)
	}
	prevClose, _ := strconv.ParseFloat(fields[2], 64)
	openPrice, _ := strconv.ParseFloat(fields[1], 64)
	high, _ := strconv.ParseFloat(fields[4], 64)
	low, _ := strconv.ParseFloat(fields[5], 64)
	volume, _ := strconv.ParseFloat(fields[8], 64)

	changePct := 0.0
	if prevClose > 0 {
		changePct = (price - prevClose) / prevClose * 100
	}

	return &model.Quote{
		Source:    model.SourceSina,
		Code:      code,
		Name:      fields[0],
		Price:     price,
		ChangePct: changePct,
		Volume:    volume,
		Open:      openPrice,
		High:      high,
		Low:       low,
		Timestamp: time.Now(),
	}, nil
}
