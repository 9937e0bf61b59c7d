package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/qq173681019/JericoNewStockSystem/internal/fetcher"
	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/provider"
	"github.com/qq173681019/JericoNewStockSystem/internal/store"
)

const historyDays = 120

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": s.Fetcher.Available(),
		"time":      time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if !provider.ValidCode(code) {
		respondError(w, http.StatusBadRequest, "无效的股票代码")
		return
	}
	quote := s.Fetcher.FetchQuote(code)
	if quote == nil {
		respondError(w, http.StatusNotFound, "未能从任何数据源获取行情")
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (s *Server) handleQuoteSources(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if !provider.ValidCode(code) {
		respondError(w, http.StatusBadRequest, "无效的股票代码")
		return
	}
	quotes := s.Fetcher.FetchAll(code)
	if len(quotes) == 0 {
		respondError(w, http.StatusNotFound, "未能从任何数据源获取行情")
		return
	}
	respondJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if !provider.ValidCode(code) {
		respondError(w, http.StatusBadRequest, "无效的股票代码")
		return
	}

	days := historyDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "days 必须为正整数")
			return
		}
		days = n
	}

	bars, dataSource := s.historyOrSynthetic(code, days)
	respondJSON(w, http.StatusOK, map[string]any{
		"code":        code,
		"data_source": dataSource,
		"bars":        bars,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	if !provider.ValidCode(code) {
		respondError(w, http.StatusBadRequest, "无效的股票代码")
		return
	}

	tf := model.Timeframe(r.URL.Query().Get("timeframe"))
	if tf == "" {
		tf = model.Timeframe3Day
	}

	bars, dataSource := s.historyOrSynthetic(code, historyDays)
	result := s.Predictor.Predict(bars, tf)

	s.recordPrediction(code, tf, result)

	respondJSON(w, http.StatusOK, map[string]any{
		"code":        code,
		"timeframe":   tf,
		"data_source": dataSource,
		"prediction":  result,
	})
}

// historyOrSynthetic fetches real daily bars, degrading to a synthesized
// demo series so the prediction endpoints keep working offline.
func (s *Server) historyOrSynthetic(code string, days int) ([]model.OHLCV, model.DataSource) {
	end := time.Now()
	start := end.AddDate(0, 0, -days)
	bars := s.Fetcher.FetchHistory(code, start, end)
	if len(bars) > 0 {
		return bars, model.DataSourceReal
	}
	log.Printf("[WARN] no real history for %s, using synthesized series", code)
	return fetcher.SynthesizeSeries(code, days), model.DataSourceDemo
}

func (s *Server) recordPrediction(code string, tf model.Timeframe, result *model.PredictionResult) {
	prices := result.Ensemble.Prices
	if len(prices) == 0 {
		return
	}
	direction := "flat"
	if n := len(result.PriceChangePcts); n > 0 {
		switch change := result.PriceChangePcts[n-1]; {
		case change > 0:
			direction = "up"
		case change < 0:
			direction = "down"
		}
	}
	rec := &model.PredictionRecord{
		Code:           code,
		PredictionType: string(tf),
		PredictedValue: prices[len(prices)-1],
		Direction:      direction,
		Confidence:     result.Confidence,
	}
	if err := s.Store.RecordPrediction(rec); err != nil {
		log.Printf("[ERROR] record prediction for %s: %v", code, err)
	}
}

func (s *Server) handleSectors(w http.ResponseWriter, _ *http.Request) {
	sectors := s.Fetcher.SectorHeat()
	if len(sectors) == 0 {
		respondError(w, http.StatusNotFound, "未能获取板块数据")
		return
	}
	respondJSON(w, http.StatusOK, sectors)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("codes")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "缺少 codes 参数")
		return
	}
	var codes []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			codes = append(codes, c)
		}
	}
	respondJSON(w, http.StatusOK, s.Fetcher.Compare(codes))
}

func (s *Server) handleWatchlistList(w http.ResponseWriter, _ *http.Request) {
	items, err := s.Store.ListWatchlist()
	if err != nil {
		log.Printf("[ERROR] list watchlist: %v", err)
		respondError(w, http.StatusInternalServerError, "读取自选股失败")
		return
	}
	if items == nil {
		items = []model.WatchlistItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	var item model.WatchlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "请求体不是有效的 JSON")
		return
	}
	if !provider.ValidCode(item.Code) {
		respondError(w, http.StatusBadRequest, "无效的股票代码")
		return
	}

	// Fill in the display name from live quotes when the client omits it.
	if item.Name == "" {
		if quote := s.Fetcher.FetchQuote(item.Code); quote != nil {
			item.Name = quote.Name
		}
	}

	if err := s.Store.AddWatch(&item); err != nil {
		log.Printf("[ERROR] add watch %s: %v", item.Code, err)
		respondError(w, http.StatusConflict, "添加自选股失败，可能已存在")
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (s *Server) handleWatchlistUpdate(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	var item model.WatchlistItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "请求体不是有效的 JSON")
		return
	}
	item.Code = code

	err := s.Store.UpdateWatch(&item)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "自选股不存在")
		return
	}
	if err != nil {
		log.Printf("[ERROR] update watch %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "更新自选股失败")
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	err := s.Store.RemoveWatch(code)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "自选股不存在")
		return
	}
	if err != nil {
		log.Printf("[ERROR] remove watch %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "删除自选股失败")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"removed": code})
}

func (s *Server) handlePredictionHistory(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit 必须为正整数")
			return
		}
		limit = n
	}

	records, err := s.Store.ListPredictions(code, limit)
	if err != nil {
		log.Printf("[ERROR] list predictions %s: %v", code, err)
		respondError(w, http.StatusInternalServerError, "读取预测记录失败")
		return
	}
	if records == nil {
		records = []model.PredictionRecord{}
	}
	respondJSON(w, http.StatusOK, records)
}
