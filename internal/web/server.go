package web

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/qq173681019/JericoNewStockSystem/internal/model"
	"github.com/qq173681019/JericoNewStockSystem/internal/store"
)

// MarketData is the slice of the fetcher the handlers need.
type MarketData interface {
	FetchQuote(code string) *model.Quote
	FetchAll(code string) map[model.Source]*model.Quote
	FetchHistory(code string, start, end time.Time) []model.OHLCV
	Compare(codes []string) []model.Comparison
	SectorHeat() []model.SectorHeat
	Available() []model.Source
}

// PricePredictor produces the ensemble prediction for a bar series.
type PricePredictor interface {
	Predict(bars []model.OHLCV, tf model.Timeframe) *model.PredictionResult
}

// Server exposes the HTTP API and the static frontend.
type Server struct {
	Fetcher   MarketData
	Predictor PricePredictor
	Store     store.Store
	StaticDir string
}

// NewServer creates the HTTP server.
func NewServer(f MarketData, p PricePredictor, st store.Store, staticDir string) *Server {
	return &Server{Fetcher: f, Predictor: p, Store: st, StaticDir: staticDir}
}

// Routes builds the router.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/quote/{code}", s.handleQuote).Methods(http.MethodGet)
	api.HandleFunc("/quote/{code}/sources", s.handleQuoteSources).Methods(http.MethodGet)
	api.HandleFunc("/history/{code}", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/predict/{code}", s.handlePredict).Methods(http.MethodGet)
	api.HandleFunc("/sectors", s.handleSectors).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.handleCompare).Methods(http.MethodGet)

	api.HandleFunc("/watchlist", s.handleWatchlistList).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", s.handleWatchlistAdd).Methods(http.MethodPost)
	api.HandleFunc("/watchlist/{code}", s.handleWatchlistUpdate).Methods(http.MethodPut)
	api.HandleFunc("/watchlist/{code}", s.handleWatchlistRemove).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist/{code}/predictions", s.handlePredictionHistory).Methods(http.MethodGet)

	if s.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(s.StaticDir)))
	}
	return r
}

// ListenAndServe runs the server until the listener fails or is closed.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[INFO] web server listening on %s", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

type apiError struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, apiError{Error: msg})
}
