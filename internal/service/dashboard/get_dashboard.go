package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/kotobanote/kotoba-backend/internal/category"
	"github.com/kotobanote/kotoba-backend/internal/domain"
)

// Day is one column of the stat window.
type Day struct {
	Date  string // YYYY-MM-DD
	Label string // M/D
}

// SideSeries is one tracked side of a unit: its counters per window
// day, oldest first, zero-filled.
type SideSeries struct {
	Side  domain.Side
	Cells []domain.StatCounters
}

// UnitSeries is one learning unit with its visible side series.
type UnitSeries struct {
	Unit  domain.LearningUnit
	Sides []SideSeries
}

// Dashboard is the assembled progress view for one scope.
type Dashboard struct {
	ScopeID string
	Days    []Day
	Units   []UnitSeries
	// Totals sums every unit and side per window day.
	Totals []domain.StatCounters
}

// GetDashboard builds the trailing stat window for the scope, ending on
// today. Units follow the scope's word order; sides without any masked
// field are omitted since nothing is ever revealed on them.
func (s *Service) GetDashboard(ctx context.Context, scopeID, today string) (*Dashboard, error) {
	sc, ok := s.scopes.ByID(scopeID)
	if !ok {
		return nil, fmt.Errorf("scope %s: %w", scopeID, domain.ErrNotFound)
	}

	end, err := time.Parse(domain.DateLayout, today)
	if err != nil {
		return nil, domain.NewValidationError("today", "must be YYYY-MM-DD")
	}

	days := windowDays(end)

	settings, ok := category.SettingsFor(sc.Category)
	if !ok {
		return nil, fmt.Errorf("category %s: %w", sc.Category, domain.ErrNotFound)
	}

	words, err := s.words.ListByPages(ctx, scopePages(sc))
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}

	stats, err := s.stats.ListByScopeAndRange(ctx, scopeID, days[0].Date, days[len(days)-1].Date)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}

	dayIndex := make(map[string]int, len(days))
	for i, d := range days {
		dayIndex[d.Date] = i
	}

	// cells[unitKey][side][dayIdx]
	type sideCells map[domain.Side][]domain.StatCounters
	cells := make(map[string]sideCells)
	totals := make([]domain.StatCounters, len(days))

	for _, st := range stats {
		i, ok := dayIndex[st.Date]
		if !ok {
			continue
		}
		byKey, ok := cells[st.UnitKey]
		if !ok {
			byKey = make(sideCells)
			cells[st.UnitKey] = byKey
		}
		row := byKey[st.Side]
		if row == nil {
			row = make([]domain.StatCounters, len(days))
			byKey[st.Side] = row
		}
		row[i] = row[i].Add(st.StatCounters)
		totals[i] = totals[i].Add(st.StatCounters)
	}

	visible := visibleSides(settings)

	var units []UnitSeries
	for _, w := range words {
		for _, unit := range DeriveUnits(w, settings) {
			us := UnitSeries{Unit: unit}
			for _, side := range []domain.Side{domain.SideLeft, domain.SideRight} {
				if !visible[side] {
					continue
				}
				key := unit.LeftUnitKey
				if side == domain.SideRight {
					key = unit.RightUnitKey
				}
				row := cells[key][side]
				if row == nil {
					row = make([]domain.StatCounters, len(days))
				}
				us.Sides = append(us.Sides, SideSeries{Side: side, Cells: row})
			}
			units = append(units, us)
		}
	}
	if units == nil {
		units = []UnitSeries{}
	}

	return &Dashboard{
		ScopeID: scopeID,
		Days:    days,
		Units:   units,
		Totals:  totals,
	}, nil
}

// windowDays returns the trailing window ending on end, oldest first.
func windowDays(end time.Time) []Day {
	days := make([]Day, WindowDays)
	for i := range days {
		d := end.AddDate(0, 0, i-(WindowDays-1))
		days[i] = Day{
			Date:  d.Format(domain.DateLayout),
			Label: fmt.Sprintf("%d/%d", int(d.Month()), d.Day()),
		}
	}
	return days
}

// visibleSides reports which panel sides the dashboard tracks: sides
// carrying a masked field in the list layout, plus sides a configured
// test unlocks on retry (those accrue test counters even without their
// own mask).
func visibleSides(settings category.Settings) map[domain.Side]bool {
	visible := make(map[domain.Side]bool, 2)
	for _, g := range settings.List {
		if g.HasMaskedSpec() {
			visible[g.Side] = true
		}
	}
	for _, t := range settings.Tests {
		if t.RetryUnlockSide.IsValid() {
			visible[t.RetryUnlockSide] = true
		}
	}
	return visible
}

// scopePages expands the scope's inclusive page range.
func scopePages(sc domain.Scope) []int {
	pages := make([]int, 0, sc.EndPage-sc.StartPage+1)
	for p := sc.StartPage; p <= sc.EndPage; p++ {
		pages = append(pages, p)
	}
	return pages
}
