package analytics

import (
	"sort"
	"time"

	"github.com/radiusdt/vector-insights/internal/dataset"
)

// Pacing status classifications.
const (
	PacingAhead  = "ahead"
	PacingBehind = "behind"
	PacingOnPace = "on_pace"
)

// CampaignPacing compares a campaign's budget consumption against its
// elapsed schedule.  DaysActive counts distinct calendar days with at
// least one delivered impression, not wall-clock days since launch.
type CampaignPacing struct {
	CampaignID   string  `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	BudgetTotal  float64 `json:"budget_total"`
	BudgetDaily  float64 `json:"budget_daily"`

	TotalSpend      float64 `json:"total_spend"`
	AvgDailySpend   float64 `json:"avg_daily_spend"`
	ForecastedSpend float64 `json:"forecasted_spend"`

	BudgetSpentPct float64 `json:"budget_spent_pct"`
	TimeElapsedPct float64 `json:"time_elapsed_pct"`
	PacingStatus   string  `json:"pacing_status"`

	DaysActive int `json:"days_active"`
	TotalDays  int `json:"total_days"`
}

// PacingAnalysis produces one row per campaign with at least one won
// impression; zero-delivery campaigns are excluded.  A campaign is
// ahead when budget% exceeds time% by more than the threshold, behind
// when it trails by more, and on pace otherwise — a gap of exactly the
// threshold still counts as on pace.  Forecasted spend is a linear
// run-rate projection, reported as 0 when no days are active.
func (e *Engine) PacingAnalysis(ds *dataset.Dataset) []CampaignPacing {
	type pacingAcc struct {
		spend float64
		days  map[time.Time]struct{}
	}

	acc := make(map[string]*pacingAcc)
	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		a, ok := acc[imp.CampaignID]
		if !ok {
			a = &pacingAcc{days: make(map[time.Time]struct{})}
			acc[imp.CampaignID] = a
		}
		a.spend += imp.WinPrice / 1000
		a.days[day(imp.Timestamp)] = struct{}{}
	}

	rows := make([]CampaignPacing, 0, len(acc))
	for _, c := range ds.Campaigns {
		a, ok := acc[c.ID]
		if !ok {
			continue
		}

		totalDays := c.DurationDays()
		daysActive := len(a.days)

		budgetPct := ratio(a.spend, c.BudgetTotal) * 100
		timePct := ratio(float64(daysActive), float64(totalDays)) * 100

		status := PacingOnPace
		switch gap := budgetPct - timePct; {
		case gap > e.pacingThreshold:
			status = PacingAhead
		case gap < -e.pacingThreshold:
			status = PacingBehind
		}

		avgDaily := ratio(a.spend, float64(daysActive))
		forecast := avgDaily * float64(totalDays)

		rows = append(rows, CampaignPacing{
			CampaignID:      c.ID,
			CampaignName:    c.Name,
			BudgetTotal:     c.BudgetTotal,
			BudgetDaily:     c.BudgetDaily,
			TotalSpend:      round2(a.spend),
			AvgDailySpend:   round2(avgDaily),
			ForecastedSpend: round2(forecast),
			BudgetSpentPct:  round1(budgetPct),
			TimeElapsedPct:  round1(timePct),
			PacingStatus:    status,
			DaysActive:      daysActive,
			TotalDays:       totalDays,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CampaignID < rows[j].CampaignID })
	return rows
}
