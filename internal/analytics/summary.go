package analytics

// Summary holds the top-line numbers for the overview page, computed
// over the campaign metrics rows so the batch spend convention carries
// through.
type Summary struct {
	Campaigns       int     `json:"campaigns"`
	TotalSpend      float64 `json:"total_spend"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	Conversions     int64   `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`
	AvgCTR          float64 `json:"avg_ctr"`
	AvgROAS         float64 `json:"avg_roas"`

	// Display strings for dashboard headline tiles.
	TotalSpendDisplay  string `json:"total_spend_display"`
	ImpressionsDisplay string `json:"impressions_display"`
	ClicksDisplay      string `json:"clicks_display"`
	AvgCTRDisplay      string `json:"avg_ctr_display"`
	AvgROASDisplay     string `json:"avg_roas_display"`
}

// Totals rolls the per-campaign metrics up into a single summary row.
// AvgCTR and AvgROAS are unweighted means over campaigns, matching the
// headline tiles of the dashboard, not spend-weighted rates.
func Totals(rows []CampaignMetrics) Summary {
	s := Summary{Campaigns: len(rows)}

	var ctrSum, roasSum float64
	for _, r := range rows {
		s.TotalSpend += r.Spend
		s.Impressions += r.ImpressionsServed
		s.Clicks += r.Clicks
		s.Conversions += r.Conversions
		s.ConversionValue += r.ConversionValue
		ctrSum += r.CTR
		roasSum += r.ROAS
	}

	s.TotalSpend = round2(s.TotalSpend)
	s.ConversionValue = round2(s.ConversionValue)
	s.AvgCTR = round3(ratio(ctrSum, float64(len(rows))))
	s.AvgROAS = round2(ratio(roasSum, float64(len(rows))))

	s.TotalSpendDisplay = FormatCurrency(s.TotalSpend)
	s.ImpressionsDisplay = FormatCount(float64(s.Impressions))
	s.ClicksDisplay = FormatCount(float64(s.Clicks))
	s.AvgCTRDisplay = FormatPercent(s.AvgCTR)
	s.AvgROASDisplay = FormatRatio(s.AvgROAS)

	return s
}
