package provider

import (
	"time"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Source model.Source
	Quote  *model.Quote
	Bars   []model.OHLCV
	Boards []Board
	Err    error

	QuoteCalls int
	BarCalls   int
}

func (m *MockProvider) Name() model.Source {
	if m.Source == "" {
		return "mock"
	}
	return m.Source
}

func (m *MockProvider) FetchQuote(code string) (*model.Quote, error) {
	m.QuoteCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Quote == nil {
		return nil, nil
	}
	q := *m.Quote
	q.Code = code
	q.Source = m.Name()
	return &q, nil
}

func (m *MockProvider) FetchDailyBars(_ string, _, _ time.Time) ([]model.OHLCV, error) {
	m.BarCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return model.CloneBars(m.Bars), nil
}

func (m *MockProvider) FetchSectorBoards() ([]Board, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Boards, nil
}
