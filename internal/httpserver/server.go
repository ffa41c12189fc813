package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radiusdt/vector-insights/internal/analytics"
	"github.com/radiusdt/vector-insights/internal/config"
	"github.com/radiusdt/vector-insights/internal/dataset"
	"github.com/radiusdt/vector-insights/internal/metrics"
	"github.com/radiusdt/vector-insights/internal/models"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	Dataset *dataset.Dataset
	Engine  *analytics.Engine
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Server exposes the dataset and the derived report tables as JSON.
type Server struct {
	dataset *dataset.Dataset
	engine  *analytics.Engine
	logger  *zap.Logger
	config  *config.Config
	metrics *metrics.Metrics
}

// NewServer constructs a new http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	s := &Server{
		dataset: deps.Dataset,
		engine:  deps.Engine,
		logger:  deps.Logger,
		config:  deps.Config,
		metrics: deps.Metrics,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Dimension tables
	mux.HandleFunc("/api/v1/advertisers", s.handleAdvertisers)
	mux.HandleFunc("/api/v1/campaigns", s.handleCampaigns)
	mux.HandleFunc("/api/v1/creatives", s.handleCreatives)

	// Reports
	mux.HandleFunc("/api/v1/reports/campaigns", s.handleCampaignReport)
	mux.HandleFunc("/api/v1/reports/revenue", s.handleRevenueReport)
	mux.HandleFunc("/api/v1/reports/margin", s.handleMarginReport)
	mux.HandleFunc("/api/v1/reports/pacing", s.handlePacingReport)
	mux.HandleFunc("/api/v1/reports/receivables", s.handleReceivablesReport)
	mux.HandleFunc("/api/v1/reports/payables", s.handlePayablesReport)
	mux.HandleFunc("/api/v1/reports/time-series", s.handleTimeSeriesReport)
	mux.HandleFunc("/api/v1/reports/summary", s.handleSummaryReport)

	return mux
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ---- Dimension tables ----

func (s *Server) handleAdvertisers(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.dataset.Advertisers)
}

func (s *Server) handleCampaigns(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, ds.Campaigns)
}

func (s *Server) handleCreatives(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, ds.Creatives)
}

// ---- Reports ----

func (s *Server) handleCampaignReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	opts := analytics.CampaignMetricsOptions{
		IncludeZeroDelivery: parseBool(r.URL.Query().Get("include_zero_delivery")),
	}

	start := time.Now()
	rows := s.engine.CampaignMetrics(ds, opts)
	s.metrics.ObserveReport("campaigns", len(rows), time.Since(start))

	s.writeJSON(w, rows)
}

func (s *Server) handleRevenueReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows := s.engine.RevenueByChannel(ds)
	s.metrics.ObserveReport("revenue", len(rows), time.Since(start))

	s.writeJSON(w, rows)
}

func (s *Server) handleMarginReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows := s.engine.MarginAnalysis(ds)
	s.metrics.ObserveReport("margin", len(rows), time.Since(start))

	s.writeJSON(w, rows)
}

func (s *Server) handlePacingReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows := s.engine.PacingAnalysis(ds)
	s.metrics.ObserveReport("pacing", len(rows), time.Since(start))

	s.writeJSON(w, rows)
}

func (s *Server) handleReceivablesReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	receivables, _ := s.engine.CashFlowAnalysis(ds)
	s.metrics.ObserveReport("receivables", len(receivables), time.Since(start))

	s.writeJSON(w, receivables)
}

func (s *Server) handlePayablesReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	_, payables := s.engine.CashFlowAnalysis(ds)
	s.metrics.ObserveReport("payables", len(payables), time.Since(start))

	s.writeJSON(w, payables)
}

func (s *Server) handleTimeSeriesReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows := s.engine.DailyTimeSeries(ds)
	s.metrics.ObserveReport("time_series", len(rows), time.Since(start))

	s.writeJSON(w, rows)
}

func (s *Server) handleSummaryReport(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	ds, err := s.filteredDataset(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	rows := s.engine.CampaignMetrics(ds, analytics.CampaignMetricsOptions{})
	summary := analytics.Totals(rows)
	s.metrics.ObserveReport("summary", len(rows), time.Since(start))

	s.writeJSON(w, summary)
}

// ---- Filter parsing ----

// filteredDataset builds the pre-filter the engine expects from query
// parameters: start/end (YYYY-MM-DD, inclusive), advertiser_id, status
// and device_type (comma-separated lists).
func (s *Server) filteredDataset(r *http.Request) (*dataset.Dataset, error) {
	q := r.URL.Query()
	var f dataset.Filter
	var err error

	if f.Start, err = parseDate(q.Get("start")); err != nil {
		return nil, err
	}
	if f.End, err = parseDate(q.Get("end")); err != nil {
		return nil, err
	}
	f.Advertisers = splitList(q.Get("advertiser_id"))
	for _, v := range splitList(q.Get("status")) {
		f.Statuses = append(f.Statuses, models.CampaignStatus(v))
	}
	for _, v := range splitList(q.Get("device_type")) {
		f.DeviceTypes = append(f.DeviceTypes, models.DeviceType(v))
	}

	return f.Apply(s.dataset), nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseBool(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ---- Response helpers ----

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
