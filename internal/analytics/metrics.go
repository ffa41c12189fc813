package analytics

import (
	"sort"
	"time"

	"github.com/radiusdt/vector-insights/internal/dataset"
	"github.com/radiusdt/vector-insights/internal/models"
)

// CampaignMetrics is one row of the basic performance report: delivery,
// spend and derived efficiency ratios for a single campaign, joined
// with the campaign's dimension attributes.
type CampaignMetrics struct {
	CampaignID   string                   `json:"campaign_id"`
	CampaignName string                   `json:"campaign_name"`
	AdvertiserID string                   `json:"advertiser_id"`
	BudgetTotal  float64                  `json:"budget_total"`
	BudgetDaily  float64                  `json:"budget_daily"`
	Objective    models.CampaignObjective `json:"objective"`
	Status       models.CampaignStatus    `json:"status"`

	// Volume metrics
	ImpressionsServed int64     `json:"impressions_served"`
	FirstImpression   time.Time `json:"first_impression,omitempty"`
	LastImpression    time.Time `json:"last_impression,omitempty"`
	Clicks            int64     `json:"clicks"`
	Conversions       int64     `json:"conversions"`

	// Financial metrics
	Spend           float64 `json:"spend"`
	AvgCPM          float64 `json:"avg_cpm"`
	ECPM            float64 `json:"ecpm"`
	ClickSpend      float64 `json:"click_spend"`
	ConversionValue float64 `json:"conversion_value"`

	// Rate metrics (percentages carry three decimals, money two)
	CTR            float64 `json:"ctr"`
	CPC            float64 `json:"cpc"`
	CPA            float64 `json:"cpa"`
	ROAS           float64 `json:"roas"`
	ConversionRate float64 `json:"conversion_rate"`
}

// CampaignMetricsOptions controls the report's join policy.
type CampaignMetricsOptions struct {
	// IncludeZeroDelivery keeps campaigns with no won impressions in the
	// result with zero-filled metrics.  The default drops them, so a
	// campaign with budget but no delivery never appears.
	IncludeZeroDelivery bool
}

type campaignAccumulator struct {
	winPriceSum float64
	impressions int64
	firstSeen   time.Time
	lastSeen    time.Time

	clicks     int64
	clickSpend float64

	conversions     int64
	conversionValue float64
}

// CampaignMetrics computes one row per campaign from won impressions,
// clicks and conversions.  Spend follows the batch CPM convention:
// sum(win_price) × impressions / 1000 per campaign group, not a
// per-impression conversion.  All ratios resolve to 0 when their
// denominator is 0.
func (e *Engine) CampaignMetrics(ds *dataset.Dataset, opts CampaignMetricsOptions) []CampaignMetrics {
	acc := make(map[string]*campaignAccumulator)
	get := func(campaignID string) *campaignAccumulator {
		a, ok := acc[campaignID]
		if !ok {
			a = &campaignAccumulator{}
			acc[campaignID] = a
		}
		return a
	}

	delivered := make(map[string]bool)
	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		a := get(imp.CampaignID)
		a.winPriceSum += imp.WinPrice
		a.impressions++
		if a.firstSeen.IsZero() || imp.Timestamp.Before(a.firstSeen) {
			a.firstSeen = imp.Timestamp
		}
		if imp.Timestamp.After(a.lastSeen) {
			a.lastSeen = imp.Timestamp
		}
		delivered[imp.CampaignID] = true
	}

	for _, cl := range ds.Clicks {
		a := get(cl.CampaignID)
		a.clicks++
		a.clickSpend += cl.Cost
	}
	for _, cv := range ds.Conversions {
		a := get(cv.CampaignID)
		a.conversions++
		a.conversionValue += cv.Value
	}

	campaigns := ds.CampaignByID()

	rows := make([]CampaignMetrics, 0, len(acc))
	for campaignID, a := range acc {
		if !delivered[campaignID] && !opts.IncludeZeroDelivery {
			continue
		}
		rows = append(rows, e.campaignRow(campaignID, a, campaigns))
	}

	if opts.IncludeZeroDelivery {
		// Outer side of the join: campaigns with no events at all.
		for id := range campaigns {
			if _, ok := acc[id]; !ok {
				rows = append(rows, e.campaignRow(id, &campaignAccumulator{}, campaigns))
			}
		}
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CampaignID < rows[j].CampaignID })
	return rows
}

func (e *Engine) campaignRow(campaignID string, a *campaignAccumulator, campaigns map[string]models.Campaign) CampaignMetrics {
	impressions := float64(a.impressions)
	rawSpend := round2(a.winPriceSum)
	spend := round2(rawSpend * impressions / 1000)

	row := CampaignMetrics{
		CampaignID:        campaignID,
		ImpressionsServed: a.impressions,
		FirstImpression:   a.firstSeen,
		LastImpression:    a.lastSeen,
		Clicks:            a.clicks,
		Conversions:       a.conversions,
		Spend:             spend,
		AvgCPM:            round2(ratio(a.winPriceSum, impressions)),
		ECPM:              round2(ratio(spend, impressions/1000)),
		ClickSpend:        round2(a.clickSpend),
		ConversionValue:   round2(a.conversionValue),
		CTR:               round3(ratio(float64(a.clicks), impressions) * 100),
		CPC:               round2(ratio(spend, float64(a.clicks))),
		CPA:               round2(ratio(spend, float64(a.conversions))),
		ROAS:              round2(ratio(a.conversionValue, spend)),
		ConversionRate:    round3(ratio(float64(a.conversions), float64(a.clicks)) * 100),
	}

	if c, ok := campaigns[campaignID]; ok {
		row.CampaignName = c.Name
		row.AdvertiserID = c.AdvertiserID
		row.BudgetTotal = c.BudgetTotal
		row.BudgetDaily = c.BudgetDaily
		row.Objective = c.Objective
		row.Status = c.Status
	}
	return row
}
