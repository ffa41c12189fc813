// Package analytics derives report tables from the in-memory campaign
// dataset.  Every report is a pure transformation of its input tables
// except where noted: margin and cash-flow synthesize costs and payment
// status from the engine's random source, and aging is measured against
// the engine's clock.  Both are injected so callers (and tests) control
// them.
package analytics

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Engine computes derived report tables.  The zero value is not usable;
// construct with NewEngine.
type Engine struct {
	// mu serializes access to rng: rand.Rand is not safe for concurrent
	// use and the HTTP layer computes reports from multiple goroutines.
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	// pacingThreshold is the budget-vs-time gap, in percentage points,
	// beyond which a campaign counts as ahead or behind.
	pacingThreshold float64
	// receivableTermDays and payableTermDays count from billing month
	// end to the payment due date.
	receivableTermDays int
	payableTermDays    int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the reference clock used for aging calculations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPacingThreshold overrides the ±10pt default pacing boundary.
func WithPacingThreshold(pct float64) Option {
	return func(e *Engine) { e.pacingThreshold = pct }
}

// WithPaymentTerms overrides the receivable/payable payment terms.
func WithPaymentTerms(receivableDays, payableDays int) Option {
	return func(e *Engine) {
		e.receivableTermDays = receivableDays
		e.payableTermDays = payableDays
	}
}

// NewEngine constructs an engine around the given random source.  Reports
// that draw from it (margin, cash-flow) are deterministic for a fixed
// seed and call sequence; seed once per process for reproducible runs.
func NewEngine(rng *rand.Rand, opts ...Option) *Engine {
	e := &Engine{
		rng:                rng,
		now:                time.Now,
		pacingThreshold:    10,
		receivableTermDays: 45,
		payableTermDays:    30,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ---- shared helpers ----

// ratio returns num/den, or 0 when the denominator is 0.  Derived
// ratios never error out on empty groups.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// day truncates a timestamp to its UTC calendar day.
func day(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// monthStart truncates a timestamp to the first day of its UTC month.
func monthStart(ts time.Time) time.Time {
	y, m, _ := ts.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// monthEnd returns the last calendar day of the timestamp's UTC month.
func monthEnd(ts time.Time) time.Time {
	return monthStart(ts).AddDate(0, 1, -1)
}
