package analytics

import (
	"sort"

	"github.com/radiusdt/vector-insights/internal/dataset"
	"github.com/radiusdt/vector-insights/internal/models"
)

// CampaignMargin is one row of the buy-side vs sell-side margin report.
// Sell-side revenue is the auction win price; buy-side cost is a
// synthetic publisher rate at 70-80% of it.
type CampaignMargin struct {
	CampaignID   string                   `json:"campaign_id"`
	CampaignName string                   `json:"campaign_name"`
	AdvertiserID string                   `json:"advertiser_id"`
	Objective    models.CampaignObjective `json:"objective"`

	TotalBuyCost        float64 `json:"total_buy_cost"`
	TotalSellRevenue    float64 `json:"total_sell_revenue"`
	TotalMargin         float64 `json:"total_margin"`
	AvgMarginPct        float64 `json:"avg_margin_pct"`
	Impressions         int64   `json:"impressions"`
	MarginPerImpression float64 `json:"margin_per_impression"`
}

// MarginAnalysis derives per-impression margins over won impressions
// and aggregates them by campaign.  Buy-side cost is drawn per
// impression from the engine's random source as a uniform 70-80%
// fraction of the win price, so two invocations differ unless the
// caller fixes the seed.  Campaigns with no won impressions do not
// appear.
func (e *Engine) MarginAnalysis(ds *dataset.Dataset) []CampaignMargin {
	e.mu.Lock()
	defer e.mu.Unlock()

	type marginAcc struct {
		buyCost      float64
		sellRevenue  float64
		margin       float64
		marginPctSum float64
		impressions  int64
	}

	acc := make(map[string]*marginAcc)
	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		buy := round2(imp.WinPrice * (0.7 + e.rng.Float64()*0.1))
		sell := imp.WinPrice
		margin := round2(sell - buy)

		a, ok := acc[imp.CampaignID]
		if !ok {
			a = &marginAcc{}
			acc[imp.CampaignID] = a
		}
		a.buyCost += buy
		a.sellRevenue += sell
		a.margin += margin
		a.marginPctSum += round2(ratio(margin, sell) * 100)
		a.impressions++
	}

	campaigns := ds.CampaignByID()

	rows := make([]CampaignMargin, 0, len(acc))
	for campaignID, a := range acc {
		row := CampaignMargin{
			CampaignID:          campaignID,
			TotalBuyCost:        round2(a.buyCost),
			TotalSellRevenue:    round2(a.sellRevenue),
			TotalMargin:         round2(a.margin),
			AvgMarginPct:        round2(ratio(a.marginPctSum, float64(a.impressions))),
			Impressions:         a.impressions,
			MarginPerImpression: round4(ratio(a.margin, float64(a.impressions))),
		}
		if c, ok := campaigns[campaignID]; ok {
			row.CampaignName = c.Name
			row.AdvertiserID = c.AdvertiserID
			row.Objective = c.Objective
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].CampaignID < rows[j].CampaignID })
	return rows
}
