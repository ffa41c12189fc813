package models

import (
	"errors"
)

// Advertiser represents a client whose campaigns run on the platform.
// Industry drives the revenue-by-industry channel breakdown and
// AccountManager identifies the owning seat for receivables follow-up.
type Advertiser struct {
	ID             string `json:"advertiser_id"`
	Name           string `json:"advertiser_name"`
	Industry       string `json:"industry"`
	AccountManager string `json:"account_manager"`
}

// Validate checks that required fields are present.  Only the ID and Name
// fields are mandatory; other fields are optional.
func (a *Advertiser) Validate() error {
	if a == nil {
		return errors.New("advertiser is nil")
	}
	if a.ID == "" {
		return errors.New("id is required")
	}
	if a.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
