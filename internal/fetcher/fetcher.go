package fetcher

import (
	"log"
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/config"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/provider"
)

// Fetcher tries multiple providers in a fixed priority order and returns the
// first usable result. Provider failures are logged and swallowed; the
// caller only ever sees nil/empty when the whole chain is exhausted.
type Fetcher struct {
	QuoteChain []provider.Provider        // most reliable first
	History    []provider.HistoryProvider // primary then fallback
	Sectors    provider.SectorProvider
	Curated    []string // force-include keywords for sector ranking
	TopN       int
}

// New assembles the fetcher from explicit provider chains. Used directly by
// tests; production code goes through NewFromConfig.
func New(quoteChain []provider.Provider, history []provider.HistoryProvider, sectors provider.SectorProvider) *Fetcher {
	return &Fetcher{
		QuoteChain: quoteChain,
		History:    history,
		Sectors:    sectors,
		TopN:       10,
	}
}

// NewFromConfig probes each provider integration and assembles the chains.
// Disabled providers are recorded as unavailable and excluded; this is
// capability detection, not a retry policy.
func NewFromConfig(cfg *config.Config) *Fetcher {
	timeout := time.Duration(cfg.Providers.TimeoutSeconds) * time.Second

	f := &Fetcher{
		Curated: cfg.Sectors.ForceInclude,
		TopN:    cfg.Sectors.TopN,
	}

	// Quote priority: direct text endpoint, REST API, bulk-scrape API,
	// international fallback.
	if cfg.ProviderEnabled(string(model.SourceSina)) {
		f.QuoteChain = append(f.QuoteChain, provider.NewSinaProvider(cfg.Proxy, timeout))
	} else {
		log.Printf("[WARN] provider %s not available", model.SourceSina)
	}
	if cfg.ProviderEnabled(string(model.SourceTencent)) {
		f.QuoteChain = append(f.QuoteChain, provider.NewTencentProvider(cfg.Proxy, timeout))
	} else {
		log.Printf("[WARN] provider %s not available", model.SourceTencent)
	}

	var em *provider.EastMoneyProvider
	if cfg.ProviderEnabled(string(model.SourceEastMoney)) {
		em = provider.NewEastMoneyProvider(cfg.Proxy, timeout)
		f.QuoteChain = append(f.QuoteChain, em)
		f.History = append(f.History, em)
		f.Sectors = em
	} else {
		log.Printf("[WARN] provider %s not available", model.SourceEastMoney)
	}
	if cfg.ProviderEnabled(string(model.SourceNetEase)) {
		f.QuoteChain = append(f.QuoteChain, provider.NewNetEaseProvider(cfg.Proxy, timeout))
	} else {
		log.Printf("[WARN] provider %s not available", model.SourceNetEase)
	}
	if cfg.ProviderEnabled(string(model.SourceYahoo)) {
		yh := provider.NewYahooProvider(cfg.Proxy, timeout)
		f.QuoteChain = append(f.QuoteChain, yh)
		f.History = append(f.History, yh)
	} else {
		log.Printf("[WARN] provider %s not available", model.SourceYahoo)
	}

	log.Printf("[INFO] fetcher initialized with sources: %v", f.Available())
	return f
}

// Available lists the configured quote sources in priority order.
func (f *Fetcher) Available() []model.Source {
	sources := make([]model.Source, len(f.QuoteChain))
	for i, p := range f.QuoteChain {
		sources[i] = p.Name()
	}
	return sources
}

// FetchQuote returns the first quote with a positive price, trying providers
// in priority order. Returns nil when every provider fails; never an error.
func (f *Fetcher) FetchQuote(code string) *model.Quote {
	if !provider.ValidCode(code) {
		log.Printf("[WARN] invalid stock code %q", code)
		return nil
	}
	for _, p := range f.QuoteChain {
		q, err := p.FetchQuote(code)
		if err != nil {
			log.Printf("[WARN] %s quote %s: %v", p.Name(), code, err)
			continue
		}
		if q == nil || q.Price <= 0 {
			log.Printf("[WARN] %s quote %s: no usable price", p.Name(), code)
			continue
		}
		log.Printf("[INFO] quote %s served by %s", code, p.Name())
		return q
	}
	log.Printf("[ERROR] all sources failed for %s", code)
	return nil
}

// FetchAll queries every available provider for one symbol. Used by the
// reliability comparison, not by the request path.
func (f *Fetcher) FetchAll(code string) map[model.Source]*model.Quote {
	results := make(map[model.Source]*model.Quote)
	if !provider.ValidCode(code) {
		return results
	}
	for _, p := range f.QuoteChain {
		q, err := p.FetchQuote(code)
		if err != nil || q == nil || q.Price <= 0 {
			continue
		}
		results[p.Name()] = q
	}
	return results
}

// FetchHistory returns daily bars for the inclusive range, trying the
// primary history provider then exactly one fallback. Returns an empty
// series when both fail; callers must treat empty as "unavailable".
func (f *Fetcher) FetchHistory(code string, start, end time.Time) []model.OHLCV {
	if !provider.ValidCode(code) {
		log.Printf("[WARN] invalid stock code %q", code)
		return nil
	}
	for _, p := range f.History {
		bars, err := p.FetchDailyBars(code, start, end)
		if err != nil {
			log.Printf("[WARN] %s history %s: %v", p.Name(), code, err)
			continue
		}
		if len(bars) == 0 {
			log.Printf("[WARN] %s history %s: empty result", p.Name(), code)
			continue
		}
		log.Printf("[INFO] fetched %d historical bars for %s from %s", len(bars), code, p.Name())
		return model.CloneBars(bars)
	}
	log.Printf("[ERROR] no historical data for %s", code)
	return nil
}
