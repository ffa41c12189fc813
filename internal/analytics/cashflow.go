package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/radiusdt/vector-insights/internal/dataset"
)

// Aging buckets for outstanding amounts, keyed off days past due.
// Bucket boundaries are inclusive on their upper bound: 0 days is
// current, 30 is still 30_days, 90 is still 60_days, 91 is 90_plus.
const (
	AgingCurrent    = "current"
	Aging30Days     = "30_days"
	Aging60Days     = "60_days"
	Aging90PlusDays = "90_plus_days"
)

// Payment status values for receivable/payable line items.
const (
	PaymentPaid        = "paid"
	PaymentOutstanding = "outstanding"
)

// Receivable is one advertiser × billing-month line: what the
// advertiser owes for that month's delivered spend, due 45 days after
// month end (configurable), with simulated payment status.
type Receivable struct {
	AdvertiserID   string `json:"advertiser_id"`
	AdvertiserName string `json:"advertiser_name"`
	Month          string `json:"month"`

	Spend             float64   `json:"spend"`
	DueDate           time.Time `json:"due_date"`
	DaysOutstanding   int       `json:"days_outstanding"`
	AgingCategory     string    `json:"aging_category"`
	PaymentStatus     string    `json:"payment_status"`
	OutstandingAmount float64   `json:"outstanding_amount"`
}

// Payable is one publisher × billing-month line: the publisher's
// revenue share for delivered impressions, due 30 days after month end.
type Payable struct {
	PublisherID   string `json:"publisher_id"`
	PublisherName string `json:"publisher_name"`
	Month         string `json:"month"`

	Payout            float64   `json:"publisher_payout"`
	DueDate           time.Time `json:"due_date"`
	DaysOutstanding   int       `json:"days_outstanding"`
	AgingCategory     string    `json:"aging_category"`
	PaymentStatus     string    `json:"payment_status"`
	OutstandingAmount float64   `json:"outstanding_amount"`
}

// CashFlowAnalysis produces the receivables and payables aging tables.
// Receivables group delivered spend by advertiser and calendar month;
// payables group a synthetic 70-80% publisher share the same way per
// publisher.  Payment status is drawn from the engine's random source
// (90% paid for receivables, 95% for payables) and aging is measured
// against the engine's clock, so results shift across days and seeds.
func (e *Engine) CashFlowAnalysis(ds *dataset.Dataset) ([]Receivable, []Payable) {
	e.mu.Lock()
	defer e.mu.Unlock()

	campaigns := ds.CampaignByID()
	advertisers := ds.AdvertiserByID()

	recvSpend := make(map[cashKey]float64)
	paySpend := make(map[cashKey]float64)

	for _, imp := range ds.Impressions {
		if !imp.Won() {
			continue
		}
		spend := imp.WinPrice / 1000
		month := monthStart(imp.Timestamp)

		if c, ok := campaigns[imp.CampaignID]; ok {
			recvSpend[cashKey{c.AdvertiserID, month}] += spend
		}

		payout := spend * (0.7 + e.rng.Float64()*0.1)
		paySpend[cashKey{imp.PublisherID, month}] += payout
	}

	today := day(e.now())

	receivables := make([]Receivable, 0, len(recvSpend))
	for _, k := range sortedKeys(recvSpend) {
		due := monthEnd(k.month).AddDate(0, 0, e.receivableTermDays)
		daysOut := daysBetween(due, today)
		spend := round2(recvSpend[k])

		status := PaymentPaid
		if e.rng.Float64() >= 0.9 {
			status = PaymentOutstanding
		}
		outstanding := 0.0
		if status == PaymentOutstanding {
			outstanding = spend
		}

		r := Receivable{
			AdvertiserID:      k.owner,
			Month:             k.month.Format("2006-01"),
			Spend:             spend,
			DueDate:           due,
			DaysOutstanding:   daysOut,
			AgingCategory:     agingCategory(daysOut),
			PaymentStatus:     status,
			OutstandingAmount: outstanding,
		}
		if adv, ok := advertisers[k.owner]; ok {
			r.AdvertiserName = adv.Name
		}
		receivables = append(receivables, r)
	}

	payables := make([]Payable, 0, len(paySpend))
	for _, k := range sortedKeys(paySpend) {
		due := monthEnd(k.month).AddDate(0, 0, e.payableTermDays)
		daysOut := daysBetween(due, today)
		payout := round2(paySpend[k])

		status := PaymentPaid
		if e.rng.Float64() >= 0.95 {
			status = PaymentOutstanding
		}
		outstanding := 0.0
		if status == PaymentOutstanding {
			outstanding = payout
		}

		payables = append(payables, Payable{
			PublisherID:       k.owner,
			PublisherName:     publisherName(k.owner),
			Month:             k.month.Format("2006-01"),
			Payout:            payout,
			DueDate:           due,
			DaysOutstanding:   daysOut,
			AgingCategory:     agingCategory(daysOut),
			PaymentStatus:     status,
			OutstandingAmount: outstanding,
		})
	}

	return receivables, payables
}

// agingCategory buckets days past due.  Negative values mean the due
// date is still in the future.
func agingCategory(daysOutstanding int) string {
	switch {
	case daysOutstanding <= 0:
		return AgingCurrent
	case daysOutstanding <= 30:
		return Aging30Days
	case daysOutstanding <= 90:
		return Aging60Days
	default:
		return Aging90PlusDays
	}
}

// publisherName derives a display name from a PUB_NNNN identifier.
func publisherName(publisherID string) string {
	if _, suffix, ok := strings.Cut(publisherID, "_"); ok {
		return "Publisher " + suffix
	}
	return "Publisher " + publisherID
}

// daysBetween counts whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// cashKey groups cash-flow lines by owning party and billing month.
type cashKey struct {
	owner string
	month time.Time
}

// sortedKeys fixes the group iteration order so the engine's random
// draws land on the same lines for a given seed.
func sortedKeys(m map[cashKey]float64) []cashKey {
	keys := make([]cashKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].owner != keys[j].owner {
			return keys[i].owner < keys[j].owner
		}
		return keys[i].month.Before(keys[j].month)
	})
	return keys
}
