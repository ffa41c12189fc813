package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiusdt/vector-insights/internal/models"
)

func filterFixture() *Dataset {
	mar := func(day, hour int) time.Time {
		return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
	}
	return &Dataset{
		Advertisers: []models.Advertiser{
			{ID: "ADV_0001", Name: "Apex Media"},
			{ID: "ADV_0002", Name: "Harbor Labs"},
		},
		Campaigns: []models.Campaign{
			{ID: "CAMP_000001", AdvertiserID: "ADV_0001", Status: models.CampaignStatusActive,
				StartDate: mar(1, 0), EndDate: mar(31, 0), BudgetTotal: 100},
			{ID: "CAMP_000002", AdvertiserID: "ADV_0001", Status: models.CampaignStatusPaused,
				StartDate: mar(1, 0), EndDate: mar(31, 0), BudgetTotal: 100},
			{ID: "CAMP_000003", AdvertiserID: "ADV_0002", Status: models.CampaignStatusActive,
				StartDate: mar(1, 0), EndDate: mar(31, 0), BudgetTotal: 100},
		},
		Creatives: []models.Creative{
			{ID: "CREAT_00000001", CampaignID: "CAMP_000001"},
			{ID: "CREAT_00000002", CampaignID: "CAMP_000003"},
		},
		Impressions: []models.Impression{
			{CampaignID: "CAMP_000001", Timestamp: mar(5, 10), DeviceType: models.DeviceMobile, Outcome: models.OutcomeWon},
			{CampaignID: "CAMP_000001", Timestamp: mar(15, 10), DeviceType: models.DeviceDesktop, Outcome: models.OutcomeWon},
			{CampaignID: "CAMP_000002", Timestamp: mar(10, 10), DeviceType: models.DeviceMobile, Outcome: models.OutcomeWon},
			{CampaignID: "CAMP_000003", Timestamp: mar(20, 10), DeviceType: models.DeviceTablet, Outcome: models.OutcomeWon},
		},
		Clicks: []models.Click{
			{ID: "c1", CampaignID: "CAMP_000001", Timestamp: mar(5, 11)},
			{ID: "c2", CampaignID: "CAMP_000003", Timestamp: mar(20, 11)},
		},
		Conversions: []models.Conversion{
			{ID: "v1", ClickID: "c1", CampaignID: "CAMP_000001", Timestamp: mar(6, 0)},
		},
	}
}

func TestFilterZeroReturnsSameDataset(t *testing.T) {
	ds := filterFixture()
	assert.True(t, Filter{}.IsZero())
	assert.Same(t, ds, Filter{}.Apply(ds))
}

func TestFilterDateRangeInclusive(t *testing.T) {
	ds := filterFixture()
	f := Filter{
		Start: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	got := f.Apply(ds)
	// Both boundary days survive; March 20 falls out.
	require.Len(t, got.Impressions, 3)
	for _, imp := range got.Impressions {
		assert.False(t, imp.Timestamp.Before(f.Start))
		assert.True(t, imp.Timestamp.Before(f.End.AddDate(0, 0, 1)))
	}
	// Campaigns, clicks and conversions are untouched by a date-only filter.
	assert.Len(t, got.Campaigns, 3)
	assert.Len(t, got.Clicks, 2)
	assert.Len(t, got.Conversions, 1)
}

func TestFilterByAdvertiserScopesEventTables(t *testing.T) {
	ds := filterFixture()
	got := Filter{Advertisers: []string{"ADV_0002"}}.Apply(ds)

	require.Len(t, got.Campaigns, 1)
	assert.Equal(t, "CAMP_000003", got.Campaigns[0].ID)

	require.Len(t, got.Creatives, 1)
	assert.Equal(t, "CREAT_00000002", got.Creatives[0].ID)

	require.Len(t, got.Impressions, 1)
	assert.Equal(t, "CAMP_000003", got.Impressions[0].CampaignID)

	require.Len(t, got.Clicks, 1)
	assert.Equal(t, "c2", got.Clicks[0].ID)
	assert.Empty(t, got.Conversions)

	// The advertiser dimension table itself stays whole.
	assert.Len(t, got.Advertisers, 2)
}

func TestFilterByStatus(t *testing.T) {
	ds := filterFixture()
	got := Filter{Statuses: []models.CampaignStatus{models.CampaignStatusActive}}.Apply(ds)

	require.Len(t, got.Campaigns, 2)
	for _, imp := range got.Impressions {
		assert.NotEqual(t, "CAMP_000002", imp.CampaignID)
	}
}

func TestFilterByDeviceType(t *testing.T) {
	ds := filterFixture()
	got := Filter{DeviceTypes: []models.DeviceType{models.DeviceMobile}}.Apply(ds)

	require.Len(t, got.Impressions, 2)
	for _, imp := range got.Impressions {
		assert.Equal(t, models.DeviceMobile, imp.DeviceType)
	}
	// Device restriction narrows impressions only.
	assert.Len(t, got.Clicks, 2)
}

func TestFilterCombined(t *testing.T) {
	ds := filterFixture()
	got := Filter{
		Advertisers: []string{"ADV_0001"},
		Statuses:    []models.CampaignStatus{models.CampaignStatusActive},
		DeviceTypes: []models.DeviceType{models.DeviceMobile},
	}.Apply(ds)

	require.Len(t, got.Campaigns, 1)
	require.Len(t, got.Impressions, 1)
	assert.Equal(t, "CAMP_000001", got.Impressions[0].CampaignID)

	// Source dataset is untouched.
	assert.Len(t, ds.Impressions, 4)
	assert.Len(t, ds.Campaigns, 3)
}
