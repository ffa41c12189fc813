package analytics

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiusdt/vector-insights/internal/dataset"
	"github.com/radiusdt/vector-insights/internal/models"
)

func TestAgingCategoryBoundaries(t *testing.T) {
	cases := []struct {
		daysOut int
		want    string
	}{
		{-5, AgingCurrent},
		{0, AgingCurrent},
		{1, Aging30Days},
		{30, Aging30Days},
		{31, Aging60Days},
		{90, Aging60Days},
		{91, Aging90PlusDays},
		{400, Aging90PlusDays},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, agingCategory(tc.daysOut), "days outstanding %d", tc.daysOut)
	}
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 15, 30, 0, 0, time.UTC)
	}
}

func cashflowEngine(seed int64, now func() time.Time) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)), WithClock(now))
}

func TestCashFlowAnalysisGroupingAndDueDates(t *testing.T) {
	// Two billing months for one advertiser, two publishers in March.
	ds := &dataset.Dataset{
		Advertisers: []models.Advertiser{{ID: "ADV_0001", Name: "Apex Media"}},
		Campaigns: []models.Campaign{
			{ID: "CAMP_000001", AdvertiserID: "ADV_0001", StartDate: ts(1, 0), EndDate: ts(28, 0), BudgetTotal: 100},
		},
		Impressions: []models.Impression{
			wonImpression("CAMP_000001", 2000, ts(5, 9)),
			wonImpression("CAMP_000001", 3000, ts(20, 9)),
			{
				Timestamp: time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC),
				CampaignID: "CAMP_000001", PublisherID: "PUB_0002",
				WinPrice: 1000, Outcome: models.OutcomeWon,
			},
		},
	}

	recv, pay := cashflowEngine(1, fixedClock(2024, 6, 14)).CashFlowAnalysis(ds)

	require.Len(t, recv, 2)
	march, april := recv[0], recv[1]
	assert.Equal(t, "ADV_0001", march.AdvertiserID)
	assert.Equal(t, "Apex Media", march.AdvertiserName)
	assert.Equal(t, "2024-03", march.Month)
	assert.Equal(t, 5.0, march.Spend)
	// Month end + 45 days.
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), march.DueDate)
	assert.Equal(t, 30, march.DaysOutstanding)
	assert.Equal(t, Aging30Days, march.AgingCategory)

	assert.Equal(t, "2024-04", april.Month)
	assert.Equal(t, 1.0, april.Spend)
	assert.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), april.DueDate)
	assert.Equal(t, 0, april.DaysOutstanding)
	assert.Equal(t, AgingCurrent, april.AgingCategory)

	require.Len(t, pay, 2)
	assert.Equal(t, "PUB_0001", pay[0].PublisherID)
	assert.Equal(t, "Publisher 0001", pay[0].PublisherName)
	assert.Equal(t, "2024-03", pay[0].Month)
	// Publisher share is 70-80% of the delivered spend.
	assert.GreaterOrEqual(t, pay[0].Payout, 0.7*5.0-0.01)
	assert.LessOrEqual(t, pay[0].Payout, 0.8*5.0+0.01)
	// Month end + 30 days, 45 days overdue at the fixed clock.
	assert.Equal(t, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), pay[0].DueDate)
	assert.Equal(t, 45, pay[0].DaysOutstanding)
	assert.Equal(t, Aging60Days, pay[0].AgingCategory)

	assert.Equal(t, "PUB_0002", pay[1].PublisherID)
	assert.Equal(t, "2024-04", pay[1].Month)
}

func TestCashFlowAnalysisOutstandingAmounts(t *testing.T) {
	// Enough lines that both payment statuses show up; the outstanding
	// amount must mirror the status on every line.
	ds := &dataset.Dataset{}
	for i := 0; i < 40; i++ {
		advID := fmt.Sprintf("ADV_%04d", i+1)
		campID := fmt.Sprintf("CAMP_%06d", i+1)
		ds.Advertisers = append(ds.Advertisers, models.Advertiser{ID: advID, Name: advID})
		ds.Campaigns = append(ds.Campaigns, models.Campaign{
			ID: campID, AdvertiserID: advID,
			StartDate: ts(1, 0), EndDate: ts(28, 0), BudgetTotal: 100,
		})
		imp := wonImpression(campID, 5000, ts(1+i%28, 9))
		imp.PublisherID = fmt.Sprintf("PUB_%04d", i+1)
		ds.Impressions = append(ds.Impressions, imp)
	}

	recv, pay := cashflowEngine(3, fixedClock(2024, 8, 1)).CashFlowAnalysis(ds)
	require.Len(t, recv, 40)
	require.Len(t, pay, 40)

	var outstanding int
	for _, r := range recv {
		switch r.PaymentStatus {
		case PaymentOutstanding:
			outstanding++
			assert.Equal(t, r.Spend, r.OutstandingAmount)
		case PaymentPaid:
			assert.Zero(t, r.OutstandingAmount)
		default:
			t.Fatalf("unexpected payment status %q", r.PaymentStatus)
		}
	}
	assert.Greater(t, outstanding, 0)
	assert.Less(t, outstanding, 40)

	for _, p := range pay {
		if p.PaymentStatus == PaymentOutstanding {
			assert.Equal(t, p.Payout, p.OutstandingAmount)
		} else {
			assert.Zero(t, p.OutstandingAmount)
		}
	}
}

func TestCashFlowAnalysisSeededReproducibility(t *testing.T) {
	ds := &dataset.Dataset{
		Advertisers: []models.Advertiser{{ID: "ADV_0001", Name: "Apex Media"}},
		Campaigns: []models.Campaign{
			{ID: "CAMP_000001", AdvertiserID: "ADV_0001", StartDate: ts(1, 0), EndDate: ts(28, 0), BudgetTotal: 100},
		},
	}
	for i := 0; i < 30; i++ {
		ds.Impressions = append(ds.Impressions, wonImpression("CAMP_000001", 1000, ts(1+i%28, i%24)))
	}

	clock := fixedClock(2024, 7, 1)
	r1, p1 := cashflowEngine(5, clock).CashFlowAnalysis(ds)
	r2, p2 := cashflowEngine(5, clock).CashFlowAnalysis(ds)
	assert.Equal(t, r1, r2)
	assert.Equal(t, p1, p2)
}
