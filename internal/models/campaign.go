package models

import (
	"errors"
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

type CampaignObjective string

const (
	ObjectiveAwareness      CampaignObjective = "awareness"
	ObjectivePerformance    CampaignObjective = "performance"
	ObjectiveRetargeting    CampaignObjective = "retargeting"
	ObjectiveBrandBuilding  CampaignObjective = "brand_building"
	ObjectiveLeadGeneration CampaignObjective = "lead_generation"
)

// Campaign is the central dimension entity.  Budgets are in account
// currency; StartDate and EndDate are inclusive calendar days, so a
// one-day campaign has StartDate == EndDate.
type Campaign struct {
	ID           string            `json:"campaign_id"`
	Name         string            `json:"campaign_name"`
	AdvertiserID string            `json:"advertiser_id"`
	StartDate    time.Time         `json:"start_date"`
	EndDate      time.Time         `json:"end_date"`
	BudgetTotal  float64           `json:"budget_total"`
	BudgetDaily  float64           `json:"budget_daily"`
	Objective    CampaignObjective `json:"objective"`
	Status       CampaignStatus    `json:"status"`
}

// DurationDays returns the inclusive number of calendar days the
// campaign is scheduled to run.
func (c *Campaign) DurationDays() int {
	return int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
}

// Validate ensures the campaign has the minimal required data.
func (c *Campaign) Validate() error {
	if c == nil {
		return errors.New("campaign is nil")
	}
	if c.ID == "" {
		return errors.New("id is required")
	}
	if c.AdvertiserID == "" {
		return errors.New("advertiser_id is required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errors.New("end_date must not precede start_date")
	}
	if c.BudgetTotal <= 0 {
		return errors.New("budget_total must be positive")
	}
	return nil
}
