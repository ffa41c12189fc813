package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiusdt/vector-insights/internal/config"
	"github.com/radiusdt/vector-insights/internal/models"
)

func testGenConfig(seed int64) config.GeneratorConfig {
	return config.GeneratorConfig{
		Seed:        seed,
		Advertisers: 10,
		Campaigns:   25,
		Impressions: 5000,
		Publishers:  8,
		Placements:  30,
		WindowStart: "2023-01-01",
		WindowEnd:   "2023-12-31",
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(testGenConfig(42)).Generate()
	b := NewGenerator(testGenConfig(42)).Generate()
	assert.Equal(t, a, b)

	c := NewGenerator(testGenConfig(43)).Generate()
	assert.NotEqual(t, a.Impressions, c.Impressions)
}

func TestGenerateEntityCounts(t *testing.T) {
	ds := NewGenerator(testGenConfig(42)).Generate()

	assert.Len(t, ds.Advertisers, 10)
	assert.Len(t, ds.Campaigns, 25)
	assert.Len(t, ds.Impressions, 5000)

	// 1-3 creatives per campaign.
	assert.GreaterOrEqual(t, len(ds.Creatives), 25)
	assert.LessOrEqual(t, len(ds.Creatives), 75)

	// Roughly a quarter of auctions win.
	var won int
	for _, imp := range ds.Impressions {
		if imp.Won() {
			won++
		}
	}
	assert.InDelta(t, 1250, won, 150)

	assert.NotEmpty(t, ds.Clicks)
	assert.LessOrEqual(t, len(ds.Clicks), won)
}

func TestGenerateReferentialIntegrity(t *testing.T) {
	ds := NewGenerator(testGenConfig(42)).Generate()

	advertisers := ds.AdvertiserByID()
	campaigns := ds.CampaignByID()
	creatives := make(map[string]models.Creative, len(ds.Creatives))
	for _, cr := range ds.Creatives {
		creatives[cr.ID] = cr
	}
	clicks := make(map[string]models.Click, len(ds.Clicks))
	for _, cl := range ds.Clicks {
		clicks[cl.ID] = cl
	}

	for _, c := range ds.Campaigns {
		_, ok := advertisers[c.AdvertiserID]
		require.True(t, ok, "campaign %s references unknown advertiser %s", c.ID, c.AdvertiserID)
	}
	for _, cr := range ds.Creatives {
		_, ok := campaigns[cr.CampaignID]
		require.True(t, ok, "creative %s references unknown campaign", cr.ID)
	}
	for _, imp := range ds.Impressions {
		_, ok := campaigns[imp.CampaignID]
		require.True(t, ok, "impression references unknown campaign %s", imp.CampaignID)
		cr, ok := creatives[imp.CreativeID]
		require.True(t, ok, "impression references unknown creative %s", imp.CreativeID)
		require.Equal(t, imp.CampaignID, cr.CampaignID, "creative belongs to a different campaign")
	}
	for _, cv := range ds.Conversions {
		_, ok := campaigns[cv.CampaignID]
		require.True(t, ok, "conversion references unknown campaign %s", cv.CampaignID)
		if cv.ClickID != "" {
			cl, ok := clicks[cv.ClickID]
			require.True(t, ok, "conversion references unknown click %s", cv.ClickID)
			require.Equal(t, cl.CampaignID, cv.CampaignID)
		} else {
			require.Equal(t, models.AttributionViewThrough, cv.Attribution)
		}
	}
}

func TestGenerateValueRanges(t *testing.T) {
	cfg := testGenConfig(42)
	ds := NewGenerator(cfg).Generate()
	start, end, err := cfg.WindowDates()
	require.NoError(t, err)

	for _, c := range ds.Campaigns {
		assert.NoError(t, c.Validate())
		assert.False(t, c.StartDate.Before(start))
		assert.False(t, c.EndDate.After(end))
		assert.GreaterOrEqual(t, c.BudgetDaily, 100.0)
		assert.LessOrEqual(t, c.BudgetDaily, 10000.0)
	}

	for _, imp := range ds.Impressions {
		assert.GreaterOrEqual(t, imp.BidPrice, 0.50)
		assert.LessOrEqual(t, imp.BidPrice, 15.00)
		// Clearing price stays under the bid; round2 can nudge it up by
		// at most half a cent.
		assert.LessOrEqual(t, imp.WinPrice, imp.BidPrice+0.005)
		assert.Greater(t, imp.WinPrice, 0.0)
	}

	for _, cl := range ds.Clicks {
		assert.Greater(t, cl.Cost, 0.0)
		// Click cost is the CPM conversion of a win price capped at $15.
		assert.LessOrEqual(t, cl.Cost, 0.015)
	}
}

func TestGenerateClickTimingFollowsImpressions(t *testing.T) {
	ds := NewGenerator(testGenConfig(42)).Generate()

	// Clicks land within an hour of a delivered impression for the same
	// campaign, so none can precede every impression of its campaign.
	earliest := make(map[string]int64)
	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		t0 := imp.Timestamp.Unix()
		if cur, ok := earliest[imp.CampaignID]; !ok || t0 < cur {
			earliest[imp.CampaignID] = t0
		}
	}
	for _, cl := range ds.Clicks {
		require.Greater(t, cl.Timestamp.Unix(), earliest[cl.CampaignID])
	}

	// Click-through conversions trail their click.
	clicks := make(map[string]models.Click)
	for _, cl := range ds.Clicks {
		clicks[cl.ID] = cl
	}
	for _, cv := range ds.Conversions {
		if cv.ClickID == "" {
			continue
		}
		require.True(t, cv.Timestamp.After(clicks[cv.ClickID].Timestamp))
	}
}
