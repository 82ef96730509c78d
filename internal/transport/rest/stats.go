package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/domain"
	"github.com/kotobanote/kotoba-backend/internal/service/dashboard"
	"github.com/kotobanote/kotoba-backend/internal/service/learninglog"
)

// statsService defines the minimal interface needed by StatsHandler.
type statsService interface {
	IncrementMany(ctx context.Context, inputs []learninglog.IncrementInput) error
	GetRange(ctx context.Context, scopeID, fromDate, toDate string) ([]domain.LearningDailyStat, error)
	ClearAll(ctx context.Context) error
}

// dashboardService defines the minimal interface needed by StatsHandler.
type dashboardService interface {
	GetDashboard(ctx context.Context, scopeID, today string) (*dashboard.Dashboard, error)
}

// StatsHandler serves learning-stat endpoints.
type StatsHandler struct {
	stats      statsService
	dashboards dashboardService
	log        *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(stats statsService, dashboards dashboardService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, dashboards: dashboards, log: logger.With("handler", "stats")}
}

// incrementEvent leaves date and amount as pointers so an omitted field
// is distinguishable from an explicit zero value.
type incrementEvent struct {
	ScopeID string  `json:"scopeId"`
	Date    *string `json:"date"`
	UnitKey string  `json:"unitKey"`
	Side    string  `json:"side"`
	Event   string  `json:"event"`
	Amount  *int    `json:"amount"`
}

type incrementRequest struct {
	Events []incrementEvent `json:"events"`
}

// Increment handles POST /api/stats/increment. Events without a date
// count against the server's local today; events without an amount
// count once.
func (h *StatsHandler) Increment(w http.ResponseWriter, r *http.Request) {
	var req incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	today := time.Now().Format(domain.DateLayout)
	inputs := make([]learninglog.IncrementInput, len(req.Events))
	for i, e := range req.Events {
		date := today
		if e.Date != nil {
			date = *e.Date
		}
		amount := 1
		if e.Amount != nil {
			amount = *e.Amount
		}
		inputs[i] = learninglog.IncrementInput{
			ScopeID: e.ScopeID,
			Date:    date,
			UnitKey: e.UnitKey,
			Side:    domain.Side(e.Side),
			Event:   domain.LearningEvent(e.Event),
			Amount:  amount,
		}
	}

	if err := h.stats.IncrementMany(r.Context(), inputs); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type statResponse struct {
	ScopeID          string `json:"scopeId"`
	Date             string `json:"date"`
	UnitKey          string `json:"unitKey"`
	Side             string `json:"side"`
	RevealCount      int    `json:"revealCount"`
	TestCorrectCount int    `json:"testCorrectCount"`
	TestWrongCount   int    `json:"testWrongCount"`
	TestForgotCount  int    `json:"testForgotCount"`
}

// Range handles GET /api/scopes/{scopeID}/stats?from=...&to=...
func (h *StatsHandler) Range(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.stats.GetRange(r.Context(), r.PathValue("scopeID"), q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out := make([]statResponse, len(stats))
	for i, st := range stats {
		out[i] = statResponse{
			ScopeID:          st.ScopeID,
			Date:             st.Date,
			UnitKey:          st.UnitKey,
			Side:             string(st.Side),
			RevealCount:      st.RevealCount,
			TestCorrectCount: st.TestCorrectCount,
			TestWrongCount:   st.TestWrongCount,
			TestForgotCount:  st.TestForgotCount,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": out})
}

// Clear handles DELETE /api/stats.
func (h *StatsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.stats.ClearAll(r.Context()); err != nil {
		respondError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type counterCell struct {
	RevealCount      int `json:"revealCount"`
	TestCorrectCount int `json:"testCorrectCount"`
	TestWrongCount   int `json:"testWrongCount"`
	TestForgotCount  int `json:"testForgotCount"`
}

type dashboardDay struct {
	Date  string `json:"date"`
	Label string `json:"label"`
}

type dashboardSide struct {
	Side  string        `json:"side"`
	Cells []counterCell `json:"cells"`
}

type dashboardUnit struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	WordID int64           `json:"wordId"`
	Sides  []dashboardSide `json:"sides"`
}

type dashboardResponse struct {
	ScopeID string          `json:"scopeId"`
	Days    []dashboardDay  `json:"days"`
	Units   []dashboardUnit `json:"units"`
	Totals  []counterCell   `json:"totals"`
}

// Dashboard handles GET /api/scopes/{scopeID}/dashboard?today=YYYY-MM-DD.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboards.GetDashboard(r.Context(), r.PathValue("scopeID"), r.URL.Query().Get("today"))
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}

	days := make([]dashboardDay, len(d.Days))
	for i, day := range d.Days {
		days[i] = dashboardDay(day)
	}

	units := make([]dashboardUnit, len(d.Units))
	for i, u := range d.Units {
		sides := make([]dashboardSide, len(u.Sides))
		for j, s := range u.Sides {
			cells := make([]counterCell, len(s.Cells))
			for k, c := range s.Cells {
				cells[k] = counterCell(c)
			}
			sides[j] = dashboardSide{Side: string(s.Side), Cells: cells}
		}
		units[i] = dashboardUnit{
			ID:     u.Unit.ID,
			Title:  u.Unit.Title,
			WordID: u.Unit.WordID,
			Sides:  sides,
		}
	}

	totals := make([]counterCell, len(d.Totals))
	for i, c := range d.Totals {
		totals[i] = counterCell(c)
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		ScopeID: d.ScopeID,
		Days:    days,
		Units:   units,
		Totals:  totals,
	})
}
