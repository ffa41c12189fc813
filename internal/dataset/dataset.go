package dataset

import (
	"time"

	"github.com/radiusdt/vector-insights/internal/models"
)

// Dataset holds the six in-memory tables the analytics engine consumes.
// It is built once at startup and treated as immutable afterwards: the
// engine only derives new tables, it never mutates these.  Ownership
// stays with the caller, which passes the dataset (or a filtered copy)
// into each report.
type Dataset struct {
	Advertisers []models.Advertiser
	Campaigns   []models.Campaign
	Creatives   []models.Creative
	Impressions []models.Impression
	Clicks      []models.Click
	Conversions []models.Conversion
}

// AdvertiserByID builds a lookup map over the advertiser table.
func (d *Dataset) AdvertiserByID() map[string]models.Advertiser {
	m := make(map[string]models.Advertiser, len(d.Advertisers))
	for _, a := range d.Advertisers {
		m[a.ID] = a
	}
	return m
}

// CampaignByID builds a lookup map over the campaign table.
func (d *Dataset) CampaignByID() map[string]models.Campaign {
	m := make(map[string]models.Campaign, len(d.Campaigns))
	for _, c := range d.Campaigns {
		m[c.ID] = c
	}
	return m
}

// Filter subsets a dataset before it reaches the engine.  Zero values
// mean "no restriction".  The date range and device restriction apply
// to impressions; advertiser and status restrictions narrow the
// campaign table, and the surviving campaign IDs then scope every
// event table.
type Filter struct {
	Start       time.Time
	End         time.Time
	Advertisers []string
	Statuses    []models.CampaignStatus
	DeviceTypes []models.DeviceType
}

// IsZero reports whether the filter imposes no restrictions.
func (f Filter) IsZero() bool {
	return f.Start.IsZero() && f.End.IsZero() &&
		len(f.Advertisers) == 0 && len(f.Statuses) == 0 && len(f.DeviceTypes) == 0
}

// Apply returns a new dataset containing only rows matching the filter.
// The source dataset is not modified; slices in the result are freshly
// allocated.  The date range is inclusive on both ends and compared at
// day granularity in UTC.
func (f Filter) Apply(d *Dataset) *Dataset {
	if f.IsZero() {
		return d
	}

	advSet := toSet(f.Advertisers)
	statusSet := make(map[models.CampaignStatus]struct{}, len(f.Statuses))
	for _, s := range f.Statuses {
		statusSet[s] = struct{}{}
	}
	deviceSet := make(map[models.DeviceType]struct{}, len(f.DeviceTypes))
	for _, dt := range f.DeviceTypes {
		deviceSet[dt] = struct{}{}
	}

	out := &Dataset{Advertisers: d.Advertisers}

	campaignIDs := make(map[string]struct{})
	for _, c := range d.Campaigns {
		if len(advSet) > 0 {
			if _, ok := advSet[c.AdvertiserID]; !ok {
				continue
			}
		}
		if len(statusSet) > 0 {
			if _, ok := statusSet[c.Status]; !ok {
				continue
			}
		}
		out.Campaigns = append(out.Campaigns, c)
		campaignIDs[c.ID] = struct{}{}
	}

	for _, cr := range d.Creatives {
		if _, ok := campaignIDs[cr.CampaignID]; ok {
			out.Creatives = append(out.Creatives, cr)
		}
	}

	for _, imp := range d.Impressions {
		if _, ok := campaignIDs[imp.CampaignID]; !ok {
			continue
		}
		if !f.inRange(imp.Timestamp) {
			continue
		}
		if len(deviceSet) > 0 {
			if _, ok := deviceSet[imp.DeviceType]; !ok {
				continue
			}
		}
		out.Impressions = append(out.Impressions, imp)
	}

	for _, cl := range d.Clicks {
		if _, ok := campaignIDs[cl.CampaignID]; ok {
			out.Clicks = append(out.Clicks, cl)
		}
	}

	for _, cv := range d.Conversions {
		if _, ok := campaignIDs[cv.CampaignID]; ok {
			out.Conversions = append(out.Conversions, cv)
		}
	}

	return out
}

func (f Filter) inRange(ts time.Time) bool {
	day := ts.UTC().Truncate(24 * time.Hour)
	if !f.Start.IsZero() && day.Before(f.Start.UTC().Truncate(24*time.Hour)) {
		return false
	}
	if !f.End.IsZero() && day.After(f.End.UTC().Truncate(24*time.Hour)) {
		return false
	}
	return true
}

func toSet(ids []string) map[string]struct{} {
	s := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}
