package analytics

import (
	"sort"
	"time"

	"github.com/radiusdt/vector-insights/internal/dataset"
)

// DailyPoint is one calendar day of delivery, joined across the three
// event tables with zero fill for days missing clicks or conversions.
type DailyPoint struct {
	Date time.Time `json:"date"`

	Impressions int64   `json:"impressions"`
	Spend       float64 `json:"spend"`
	AvgCPM      float64 `json:"avg_cpm"`

	Clicks    int64   `json:"clicks"`
	ClickCost float64 `json:"click_cost"`

	Conversions     int64   `json:"conversions"`
	ConversionValue float64 `json:"conversion_value"`

	CTR float64 `json:"ctr"`
	CPC float64 `json:"cpc"`
	CPA float64 `json:"cpa"`
}

// DailyTimeSeries aggregates delivery per UTC calendar day for trend
// charts.  Days appear only when at least one won impression landed on
// them; click and conversion columns zero-fill.  Spend is the
// per-impression CPM conversion summed per day.
func (e *Engine) DailyTimeSeries(ds *dataset.Dataset) []DailyPoint {
	points := make(map[time.Time]*DailyPoint)
	get := func(d time.Time) *DailyPoint {
		p, ok := points[d]
		if !ok {
			p = &DailyPoint{Date: d}
			points[d] = p
		}
		return p
	}

	winPriceSums := make(map[time.Time]float64)
	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		d := day(imp.Timestamp)
		p := get(d)
		p.Impressions++
		p.Spend += imp.WinPrice / 1000
		winPriceSums[d] += imp.WinPrice
	}

	for _, cl := range ds.Clicks {
		d := day(cl.Timestamp)
		if _, ok := points[d]; !ok {
			// Left-join semantics: days without delivery stay absent.
			continue
		}
		p := points[d]
		p.Clicks++
		p.ClickCost += cl.Cost
	}

	for _, cv := range ds.Conversions {
		d := day(cv.Timestamp)
		if _, ok := points[d]; !ok {
			continue
		}
		p := points[d]
		p.Conversions++
		p.ConversionValue += cv.Value
	}

	rows := make([]DailyPoint, 0, len(points))
	for d, p := range points {
		p.Spend = round2(p.Spend)
		p.AvgCPM = round2(ratio(winPriceSums[d], float64(p.Impressions)))
		p.ClickCost = round2(p.ClickCost)
		p.ConversionValue = round2(p.ConversionValue)
		p.CTR = round3(ratio(float64(p.Clicks), float64(p.Impressions)) * 100)
		p.CPC = round2(ratio(p.Spend, float64(p.Clicks)))
		p.CPA = round2(ratio(p.Spend, float64(p.Conversions)))
		rows = append(rows, *p)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
