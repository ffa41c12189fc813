package dataset

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/radiusdt/vector-insights/internal/config"
	"github.com/radiusdt/vector-insights/internal/models"
)

// Dimension vocabularies for the synthetic dataset.
var (
	industries = []string{
		"E-commerce", "Finance", "Healthcare", "Technology", "Automotive",
		"Travel", "Food & Beverage", "Fashion", "Gaming", "Education",
	}
	objectives = []models.CampaignObjective{
		models.ObjectiveAwareness, models.ObjectivePerformance, models.ObjectiveRetargeting,
		models.ObjectiveBrandBuilding, models.ObjectiveLeadGeneration,
	}
	creativeTypes = []models.CreativeType{
		models.CreativeBanner, models.CreativeVideo, models.CreativeNative,
		models.CreativeRichMedia, models.CreativeAudio,
	}
	creativeDims = []string{"300x250", "728x90", "160x600", "320x50", "970x250", "300x600", "1920x1080"}
	deviceTypes  = []models.DeviceType{
		models.DeviceDesktop, models.DeviceMobile, models.DeviceTablet, models.DeviceCTV,
	}
	countries    = []string{"US", "CA", "UK", "DE", "FR", "AU", "JP", "BR"}
	auctionTypes = []models.AuctionType{models.AuctionOpen, models.AuctionPMP, models.AuctionDirect}
	convTypes    = []models.ConversionType{
		models.ConversionPurchase, models.ConversionSignup, models.ConversionInstall,
		models.ConversionLead, models.ConversionDownload,
	}
	attribModels = []models.AttributionModel{
		models.AttributionLastClick, models.AttributionViewThrough,
		models.AttributionFirstClick, models.AttributionLinear,
	}

	companyStems = []string{
		"Apex", "Northwind", "Bluepeak", "Crescent", "Lumen", "Vireo", "Halcyon",
		"Summit", "Argent", "Coastal", "Meridian", "Quartz", "Solstice", "Harbor",
	}
	companySuffixes = []string{"Media", "Retail", "Labs", "Group", "Holdings", "Brands", "Digital"}
	firstNames      = []string{"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ruby", "Owen", "Iris", "Cole"}
	lastNames       = []string{"Hart", "Nguyen", "Okafor", "Silva", "Meyer", "Tanaka", "Costa", "Novak", "Reyes", "Lund"}
	catchPhrases    = []string{
		"Always-On Reach", "Spring Push", "Holiday Blitz", "Brand Lift Drive",
		"Performance Sprint", "Launch Wave", "Evergreen Reach", "Retarget Boost",
	}
)

// Generator builds a deterministic synthetic dataset.  All draws come
// from a single seeded source, so equal configs produce equal datasets.
type Generator struct {
	cfg config.GeneratorConfig
	rng *rand.Rand

	windowStart time.Time
	windowEnd   time.Time
}

// NewGenerator constructs a generator from config.  The config is
// assumed validated (config.Load does this).
func NewGenerator(cfg config.GeneratorConfig) *Generator {
	start, end, _ := cfg.WindowDates()
	return &Generator{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		windowStart: start,
		windowEnd:   end,
	}
}

// Generate produces the full dataset: dimensions first, then the
// impression fact table, then clicks and conversions derived from it.
func (g *Generator) Generate() *Dataset {
	d := &Dataset{}
	d.Advertisers = g.generateAdvertisers()
	d.Campaigns = g.generateCampaigns(d.Advertisers)
	d.Creatives = g.generateCreatives(d.Campaigns)
	d.Impressions = g.generateImpressions(d.Campaigns, d.Creatives)
	d.Clicks = g.generateClicks(d.Impressions)
	d.Conversions = g.generateConversions(d.Clicks, d.Impressions)
	return d
}

func (g *Generator) generateAdvertisers() []models.Advertiser {
	advertisers := make([]models.Advertiser, 0, g.cfg.Advertisers)
	for i := 0; i < g.cfg.Advertisers; i++ {
		advertisers = append(advertisers, models.Advertiser{
			ID:             fmt.Sprintf("ADV_%04d", i+1),
			Name:           pick(g.rng, companyStems) + " " + pick(g.rng, companySuffixes),
			Industry:       pick(g.rng, industries),
			AccountManager: pick(g.rng, firstNames) + " " + pick(g.rng, lastNames),
		})
	}
	return advertisers
}

func (g *Generator) generateCampaigns(advertisers []models.Advertiser) []models.Campaign {
	// Campaigns start early enough in the window to accrue delivery.
	latestStart := g.windowEnd.AddDate(0, -6, 0)
	if latestStart.Before(g.windowStart) {
		latestStart = g.windowStart
	}

	campaigns := make([]models.Campaign, 0, g.cfg.Campaigns)
	for i := 0; i < g.cfg.Campaigns; i++ {
		adv := advertisers[g.rng.Intn(len(advertisers))]
		start := g.dateBetween(g.windowStart, latestStart)
		end := g.dateBetween(start, g.windowEnd)

		days := int(end.Sub(start).Hours()/24) + 1
		dailyBudget := g.uniform(100, 10000)
		totalBudget := dailyBudget * float64(days) * g.uniform(0.8, 1.2)

		campaigns = append(campaigns, models.Campaign{
			ID:           fmt.Sprintf("CAMP_%06d", i+1),
			Name:         adv.Name + " - " + pick(g.rng, catchPhrases),
			AdvertiserID: adv.ID,
			StartDate:    start,
			EndDate:      end,
			BudgetTotal:  round2(totalBudget),
			BudgetDaily:  round2(dailyBudget),
			Objective:    pick(g.rng, objectives),
			Status:       g.campaignStatus(),
		})
	}
	return campaigns
}

// campaignStatus draws active/paused/completed with 30/10/60 weights.
func (g *Generator) campaignStatus() models.CampaignStatus {
	switch r := g.rng.Float64(); {
	case r < 0.3:
		return models.CampaignStatusActive
	case r < 0.4:
		return models.CampaignStatusPaused
	default:
		return models.CampaignStatusCompleted
	}
}

func (g *Generator) generateCreatives(campaigns []models.Campaign) []models.Creative {
	creatives := make([]models.Creative, 0, len(campaigns)*2)
	for _, c := range campaigns {
		n := 1 + g.rng.Intn(3)
		for j := 0; j < n; j++ {
			ct := pick(g.rng, creativeTypes)
			dim := pick(g.rng, creativeDims)
			if ct == models.CreativeVideo {
				dim = "1920x1080"
			}
			creatives = append(creatives, models.Creative{
				ID:         fmt.Sprintf("CREAT_%08d", len(creatives)+1),
				CampaignID: c.ID,
				Type:       ct,
				Dimensions: dim,
				FileSizeKB: 50 + g.rng.Intn(1951),
				ClickURL:   fmt.Sprintf("https://landing.example.com/%s/%d", c.ID, j+1),
			})
		}
	}
	return creatives
}

func (g *Generator) generateImpressions(campaigns []models.Campaign, creatives []models.Creative) []models.Impression {
	byCampaign := make(map[string][]models.Creative, len(campaigns))
	for _, cr := range creatives {
		byCampaign[cr.CampaignID] = append(byCampaign[cr.CampaignID], cr)
	}

	publishers := make([]string, g.cfg.Publishers)
	for i := range publishers {
		publishers[i] = fmt.Sprintf("PUB_%04d", i+1)
	}
	placements := make([]string, g.cfg.Placements)
	for i := range placements {
		placements[i] = fmt.Sprintf("PLACE_%06d", i+1)
	}

	impressions := make([]models.Impression, 0, g.cfg.Impressions)
	for i := 0; i < g.cfg.Impressions; i++ {
		campaign := campaigns[g.rng.Intn(len(campaigns))]
		crs := byCampaign[campaign.ID]
		if len(crs) == 0 {
			continue
		}
		creative := crs[g.rng.Intn(len(crs))]

		end := campaign.EndDate
		if end.After(g.windowEnd) {
			end = g.windowEnd
		}
		ts := g.timeBetween(campaign.StartDate, end.Add(24*time.Hour-time.Second))

		bid := g.uniform(0.50, 15.00)
		win := bid * g.uniform(0.7, 0.95)

		country := pick(g.rng, countries)
		outcome := models.OutcomeLost
		if g.rng.Float64() < 0.25 {
			outcome = models.OutcomeWon
		}

		impressions = append(impressions, models.Impression{
			Timestamp:    ts,
			CampaignID:   campaign.ID,
			CreativeID:   creative.ID,
			PublisherID:  pick(g.rng, publishers),
			PlacementID:  pick(g.rng, placements),
			DeviceType:   pick(g.rng, deviceTypes),
			GeoCountry:   country,
			GeoRegion:    fmt.Sprintf("%s_Region_%d", country, 1+g.rng.Intn(10)),
			GeoCity:      fmt.Sprintf("%s_City_%d", country, 1+g.rng.Intn(50)),
			AuctionType:  pick(g.rng, auctionTypes),
			BidRequestID: g.uuid(),
			BidPrice:     round2(bid),
			WinPrice:     round2(win),
			Outcome:      outcome,
		})
	}
	return impressions
}

func (g *Generator) generateClicks(impressions []models.Impression) []models.Click {
	won := wonOnly(impressions)
	if len(won) == 0 {
		return nil
	}

	// Realistic CTR: 0.1% to 3% of delivered impressions.
	n := int(float64(len(won)) * g.uniform(0.001, 0.03))
	if n > len(won) {
		n = len(won)
	}
	sample := g.sample(len(won), n)

	clicks := make([]models.Click, 0, n)
	for _, idx := range sample {
		imp := won[idx]
		clicks = append(clicks, models.Click{
			ID:           g.uuid(),
			ImpressionID: fmt.Sprintf("IMP_%010d", len(clicks)+1),
			Timestamp:    imp.Timestamp.Add(time.Duration(1+g.rng.Intn(3600)) * time.Second),
			CampaignID:   imp.CampaignID,
			CreativeID:   imp.CreativeID,
			PublisherID:  imp.PublisherID,
			DeviceType:   imp.DeviceType,
			GeoCountry:   imp.GeoCountry,
			Cost:         round4(imp.WinPrice / 1000),
		})
	}
	return clicks
}

func (g *Generator) generateConversions(clicks []models.Click, impressions []models.Impression) []models.Conversion {
	var conversions []models.Conversion

	// Click-through conversions: 2-15% of clicks convert, within 7 days.
	if len(clicks) > 0 {
		n := int(float64(len(clicks)) * g.uniform(0.02, 0.15))
		if n > len(clicks) {
			n = len(clicks)
		}
		for _, idx := range g.sample(len(clicks), n) {
			click := clicks[idx]
			value := 0.0
			if g.rng.Float64() < 0.7 {
				value = g.uniform(10, 500)
			}
			conversions = append(conversions, models.Conversion{
				ID:           g.uuid(),
				ClickID:      click.ID,
				ImpressionID: click.ImpressionID,
				Timestamp:    click.Timestamp.Add(time.Duration(1+g.rng.Intn(168)) * time.Hour),
				CampaignID:   click.CampaignID,
				Type:         pick(g.rng, convTypes),
				Value:        round2(value),
				Attribution:  pick(g.rng, attribModels),
			})
		}
	}

	// View-through conversions: 0.1-0.5% of delivered impressions,
	// within 30 days, no originating click.
	won := wonOnly(impressions)
	if len(won) > 0 {
		n := int(float64(len(won)) * g.uniform(0.001, 0.005))
		if n > len(won) {
			n = len(won)
		}
		for _, idx := range g.sample(len(won), n) {
			imp := won[idx]
			value := 0.0
			if g.rng.Float64() < 0.5 {
				value = g.uniform(5, 200)
			}
			conversions = append(conversions, models.Conversion{
				ID:           g.uuid(),
				ImpressionID: fmt.Sprintf("IMP_%010d", len(conversions)+1),
				Timestamp:    imp.Timestamp.Add(time.Duration(1+g.rng.Intn(720)) * time.Hour),
				CampaignID:   imp.CampaignID,
				Type:         pick(g.rng, convTypes),
				Value:        round2(value),
				Attribution:  models.AttributionViewThrough,
			})
		}
	}

	return conversions
}

// ---- draw helpers ----

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

// dateBetween draws a calendar day in [start, end] at UTC midnight.
func (g *Generator) dateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, g.rng.Intn(days+1))
}

// timeBetween draws an instant in [start, end].
func (g *Generator) timeBetween(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	span := end.Sub(start)
	return start.Add(time.Duration(g.rng.Int63n(int64(span))))
}

// sample draws k distinct indexes out of n via a partial shuffle.
func (g *Generator) sample(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	g.rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx[:k]
}

// uuid draws a deterministic UUID from the generator's random source.
func (g *Generator) uuid() string {
	u, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// The rand source never fails to read.
		panic(err)
	}
	return u.String()
}

func wonOnly(impressions []models.Impression) []models.Impression {
	won := make([]models.Impression, 0, len(impressions)/4)
	for _, imp := range impressions {
		if imp.Won() {
			won = append(won, imp)
		}
	}
	return won
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
