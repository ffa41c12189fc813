package models

import (
	"errors"
)

type CreativeType string

const (
	CreativeBanner    CreativeType = "banner"
	CreativeVideo     CreativeType = "video"
	CreativeNative    CreativeType = "native"
	CreativeRichMedia CreativeType = "rich_media"
	CreativeAudio     CreativeType = "audio"
)

// Creative is an ad variant served under a campaign.  Dimensions is the
// "WxH" pixel string used in trafficking (video creatives are always
// 1920x1080).
type Creative struct {
	ID         string       `json:"creative_id"`
	CampaignID string       `json:"campaign_id"`
	Type       CreativeType `json:"creative_type"`
	Dimensions string       `json:"dimensions"`
	FileSizeKB int          `json:"file_size_kb"`
	ClickURL   string       `json:"click_url"`
}

// Validate ensures the creative references its parent campaign.
func (c *Creative) Validate() error {
	if c == nil {
		return errors.New("creative is nil")
	}
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.CampaignID == "" {
		return errors.New("campaign_id is required")
	}
	return nil
}
