package domain

import (
	"fmt"
	"time"
)

// StatCounters holds the four monotonic event counters of one daily
// stat row. Counters only grow, via the increment API.
type StatCounters struct {
	RevealCount      int
	TestCorrectCount int
	TestWrongCount   int
	TestForgotCount  int
}

// Add returns the element-wise sum of two counter sets.
func (c StatCounters) Add(other StatCounters) StatCounters {
	return StatCounters{
		RevealCount:      c.RevealCount + other.RevealCount,
		TestCorrectCount: c.TestCorrectCount + other.TestCorrectCount,
		TestWrongCount:   c.TestWrongCount + other.TestWrongCount,
		TestForgotCount:  c.TestForgotCount + other.TestForgotCount,
	}
}

// AddEvent returns counters with the named event incremented by amount.
func (c StatCounters) AddEvent(event LearningEvent, amount int) StatCounters {
	switch event {
	case EventReveal:
		c.RevealCount += amount
	case EventTestCorrect:
		c.TestCorrectCount += amount
	case EventTestWrong:
		c.TestWrongCount += amount
	case EventTestForgot:
		c.TestForgotCount += amount
	}
	return c
}

// IsZero reports whether all counters are zero.
func (c StatCounters) IsZero() bool {
	return c == StatCounters{}
}

// LearningDailyStat is one aggregated counter row. At most one row
// exists per (scope, date, unit key, side); DailyKey enforces that.
type LearningDailyStat struct {
	ID       int64
	DailyKey string // scopeID|date|unitKey|side, unique
	ScopeID  string
	Date     string // YYYY-MM-DD
	UnitKey  string
	Side     Side
	StatCounters
	UpdatedAt time.Time
}

// BuildDailyKey builds the composite uniqueness key of a daily stat row.
func BuildDailyKey(scopeID, date, unitKey string, side Side) string {
	return fmt.Sprintf("%s|%s|%s|%s", scopeID, date, unitKey, side)
}
