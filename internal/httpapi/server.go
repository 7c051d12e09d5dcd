// Package httpapi serves aggregated views of the transaction source as JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/uillasnr/mobilefinance/internal/catalog"
	flog "github.com/uillasnr/mobilefinance/internal/log"
	"github.com/uillasnr/mobilefinance/internal/ledger"
	"github.com/uillasnr/mobilefinance/internal/model"
	"github.com/uillasnr/mobilefinance/internal/period"
	"github.com/uillasnr/mobilefinance/internal/source"
)

// Server answers read-only queries. Every request aggregates a fresh snapshot.
type Server struct {
	src     source.Source
	agg     *ledger.Aggregator
	catalog *catalog.Service
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog resolves category titles and colors before aggregating.
func WithCatalog(c *catalog.Service) Option {
	return func(s *Server) { s.catalog = c }
}

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server.
func New(src source.Source, agg *ledger.Aggregator, opts ...Option) *Server {
	s := &Server{
		src:    src,
		agg:    agg,
		logger: flog.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(flog.Middleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/sections", s.sections)
	r.Get("/categories", s.categories)
	r.Get("/evolution", s.evolution)
	r.Get("/goals", s.goals)
	r.Get("/dashboard", s.dashboard)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

// GoalView is a goal with its derived progress.
type GoalView struct {
	model.Goal
	Progress  decimal.Decimal `json:"progress"`
	Completed bool            `json:"completed"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) sections(w http.ResponseWriter, r *http.Request) {
	month, year, err := monthYear(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	txns, ok := s.transactions(w, r)
	if !ok {
		return
	}
	txns = s.agg.FilterByPeriod(txns, month, year)
	writeJSON(w, http.StatusOK, s.agg.GroupByMonth(txns, s.now()))
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	p := period.Of(s.now().In(s.agg.Location()))
	if raw := r.URL.Query().Get("period"); raw != "" {
		var err error
		if p, err = period.Parse(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	var typ model.TransactionType
	switch raw := r.URL.Query().Get("type"); raw {
	case "":
	case string(model.TypeExpense), string(model.TypeIncome):
		typ = model.TransactionType(raw)
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "type must be expense or income"})
		return
	}

	txns, ok := s.transactions(w, r)
	if !ok {
		return
	}
	txns = s.agg.FilterByPeriod(txns, &p.Month, &p.Year)
	if typ != "" {
		txns = s.agg.FilterByType(txns, typ)
	}
	writeJSON(w, http.StatusOK, s.agg.SumByCategory(txns))
}

func (s *Server) evolution(w http.ResponseWriter, r *http.Request) {
	var year int
	if raw := r.URL.Query().Get("year"); raw != "" {
		var err error
		if year, err = strconv.Atoi(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "year must be an integer"})
			return
		}
	}

	txns, ok := s.transactions(w, r)
	if !ok {
		return
	}
	points := s.agg.Evolution(txns)
	if year != 0 {
		kept := make([]model.MonthBalance, 0, len(points))
		for _, p := range points {
			if p.Year == year {
				kept = append(kept, p)
			}
		}
		points = kept
	}
	writeJSON(w, http.StatusOK, points)
}

func (s *Server) goals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.src.Goals(r.Context())
	if err != nil {
		s.upstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goalViews(goals))
}

// Dashboard is everything the home screen draws for one month.
type Dashboard struct {
	Period     string                `json:"period"`
	Title      string                `json:"title"`
	Categories []model.CategoryTotal `json:"categories"`
	Evolution  []model.MonthBalance  `json:"evolution"`
	Goals      []GoalView            `json:"goals"`
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	p := period.Of(s.now().In(s.agg.Location()))
	if raw := r.URL.Query().Get("period"); raw != "" {
		var err error
		if p, err = period.Parse(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	var txns []model.Transaction
	var goals []model.Goal
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txns, err = s.src.Transactions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		goals, err = s.src.Goals(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.upstreamError(w, r, err)
		return
	}
	if s.catalog != nil {
		txns = s.catalog.ResolveAll(txns)
	}

	month := s.agg.FilterByPeriod(txns, &p.Month, &p.Year)
	evolution := make([]model.MonthBalance, 0)
	for _, mb := range s.agg.Evolution(txns) {
		if mb.Year == p.Year {
			evolution = append(evolution, mb)
		}
	}

	writeJSON(w, http.StatusOK, Dashboard{
		Period:     p.String(),
		Title:      s.agg.Locale().MonthYear(p.Year, p.Month),
		Categories: s.agg.SumByCategory(s.agg.FilterByType(month, model.TypeExpense)),
		Evolution:  evolution,
		Goals:      goalViews(goals),
	})
}

func goalViews(goals []model.Goal) []GoalView {
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, GoalView{Goal: g, Progress: g.Progress(), Completed: g.Completed()})
	}
	return views
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) ([]model.Transaction, bool) {
	txns, err := s.src.Transactions(r.Context())
	if err != nil {
		s.upstreamError(w, r, err)
		return nil, false
	}
	if s.catalog != nil {
		txns = s.catalog.ResolveAll(txns)
	}
	return txns, true
}

func (s *Server) upstreamError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "fetching snapshot",
		flog.FieldComponent, flog.ComponentSource,
		flog.FieldRequestID, middleware.GetReqID(r.Context()),
		flog.FieldError, err,
	)
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
}

// monthYear reads the optional 0-based month and year filter. Both or
// neither must be given.
func monthYear(r *http.Request) (*int, *int, error) {
	q := r.URL.Query()
	rawMonth, rawYear := q.Get("month"), q.Get("year")
	if rawMonth == "" && rawYear == "" {
		return nil, nil, nil
	}
	if rawMonth == "" || rawYear == "" {
		return nil, nil, errors.New("month and year must be given together")
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return nil, nil, errors.New("month must be an integer")
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, nil, errors.New("year must be an integer")
	}
	if _, err := period.New(year, month); err != nil {
		return nil, nil, err
	}
	return &month, &year, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
