package models

import (
	"time"
)

// ===========================================
// IMPRESSION EVENT
// ===========================================

type ImpressionOutcome string

const (
	OutcomeWon  ImpressionOutcome = "won"
	OutcomeLost ImpressionOutcome = "lost"
)

type AuctionType string

const (
	AuctionOpen   AuctionType = "open"
	AuctionPMP    AuctionType = "PMP"
	AuctionDirect AuctionType = "direct"
)

type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceCTV     DeviceType = "CTV"
)

// Impression is a single auction participation.  BidPrice and WinPrice
// are CPM values; only impressions with Outcome == OutcomeWon carry
// spend.
type Impression struct {
	Timestamp  time.Time `json:"timestamp"`
	CampaignID string    `json:"campaign_id"`
	CreativeID string    `json:"creative_id"`

	PublisherID string `json:"publisher_id"`
	PlacementID string `json:"placement_id"`

	DeviceType DeviceType `json:"device_type"`

	// Geo info
	GeoCountry string `json:"geo_country"`
	GeoRegion  string `json:"geo_region,omitempty"`
	GeoCity    string `json:"geo_city,omitempty"`

	// Auction info
	AuctionType  AuctionType       `json:"auction_type"`
	BidRequestID string            `json:"bid_request_id"`
	BidPrice     float64           `json:"bid_price"`
	WinPrice     float64           `json:"win_price"`
	Outcome      ImpressionOutcome `json:"impression_outcome"`
}

// Won reports whether the impression was actually delivered.
func (i *Impression) Won() bool {
	return i.Outcome == OutcomeWon
}

// ===========================================
// CLICK EVENT
// ===========================================

// Click records a user click on a delivered impression.  ImpressionID
// is informational and not strictly foreign-keyed into the impression
// set.  Cost is the CPM win price converted to a per-event cost.
type Click struct {
	ID           string    `json:"click_id"`
	ImpressionID string    `json:"impression_id"`
	Timestamp    time.Time `json:"timestamp"`
	CampaignID   string    `json:"campaign_id"`
	CreativeID   string    `json:"creative_id"`
	PublisherID  string    `json:"publisher_id"`

	DeviceType DeviceType `json:"device_type"`
	GeoCountry string     `json:"geo_country"`

	Cost float64 `json:"click_cost"`
}

// ===========================================
// CONVERSION EVENT
// ===========================================

type ConversionType string

const (
	ConversionPurchase ConversionType = "purchase"
	ConversionSignup   ConversionType = "signup"
	ConversionInstall  ConversionType = "install"
	ConversionLead     ConversionType = "lead"
	ConversionDownload ConversionType = "download"
)

type AttributionModel string

const (
	AttributionLastClick   AttributionModel = "last_click"
	AttributionViewThrough AttributionModel = "view_through"
	AttributionFirstClick  AttributionModel = "first_click"
	AttributionLinear      AttributionModel = "linear"
)

// Conversion records a post-click or view-through action.  ClickID is
// empty for view-through conversions, which attribute to an impression
// instead.  Value is zero for non-monetary conversions.
type Conversion struct {
	ID           string    `json:"conversion_id"`
	ClickID      string    `json:"click_id,omitempty"`
	ImpressionID string    `json:"impression_id"`
	Timestamp    time.Time `json:"timestamp"`
	CampaignID   string    `json:"campaign_id"`

	Type        ConversionType   `json:"conversion_type"`
	Value       float64          `json:"conversion_value"`
	Attribution AttributionModel `json:"attribution_model"`
}
