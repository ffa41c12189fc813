package analytics

import (
	"sort"

	"github.com/radiusdt/vector-insights/internal/dataset"
)

// Channel type discriminators for the long-form revenue table.
const (
	ChannelDevice   = "device"
	ChannelAuction  = "auction"
	ChannelGeo      = "geo"
	ChannelIndustry = "industry"
)

// ChannelRevenue is one row of the long-form revenue breakdown: total
// won spend attributed to one value of one grouping dimension.
type ChannelRevenue struct {
	Channel     string  `json:"channel"`
	ChannelType string  `json:"channel_type"`
	Revenue     float64 `json:"revenue"`
}

// RevenueByChannel breaks delivered spend down by four orthogonal
// dimensions: device type, auction type, geo country and advertiser
// industry (a two-hop join through the campaign table).  Spend here is
// the per-impression CPM conversion, win_price / 1000, summed per
// group.  Each grouping partitions the same total independently; the
// four blocks are unioned, not summed.
func (e *Engine) RevenueByChannel(ds *dataset.Dataset) []ChannelRevenue {
	device := make(map[string]float64)
	auction := make(map[string]float64)
	geo := make(map[string]float64)
	industry := make(map[string]float64)

	campaigns := ds.CampaignByID()
	advertisers := ds.AdvertiserByID()

	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		spend := imp.WinPrice / 1000

		device[string(imp.DeviceType)] += spend
		auction[string(imp.AuctionType)] += spend
		geo[imp.GeoCountry] += spend

		if c, ok := campaigns[imp.CampaignID]; ok {
			if adv, ok := advertisers[c.AdvertiserID]; ok {
				industry[adv.Industry] += spend
			}
		}
	}

	rows := make([]ChannelRevenue, 0, len(device)+len(auction)+len(geo)+len(industry))
	rows = append(rows, channelRows(device, ChannelDevice)...)
	rows = append(rows, channelRows(auction, ChannelAuction)...)
	rows = append(rows, channelRows(geo, ChannelGeo)...)
	rows = append(rows, channelRows(industry, ChannelIndustry)...)
	return rows
}

func channelRows(totals map[string]float64, channelType string) []ChannelRevenue {
	rows := make([]ChannelRevenue, 0, len(totals))
	for channel, revenue := range totals {
		rows = append(rows, ChannelRevenue{
			Channel:     channel,
			ChannelType: channelType,
			Revenue:     round2(revenue),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Channel < rows[j].Channel })
	return rows
}
