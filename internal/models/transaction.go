package models

import (
	"strings"
	"time"
)

// Transaction is a payment transaction snapshot. Amounts are in satang,
// the minor unit of THB (100 satang = 1 THB).
type Transaction struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	ChargeID       *string `json:"charge_id"`
	AmountSatang   *int64  `json:"amount_satang"`
	Currency       *string `json:"currency"`
	Channel        *string `json:"channel"`
	Status         *string `json:"status"`
	FailureCode    *string `json:"failure_code"`
	FailureMessage *string `json:"failure_message"`
	CreatedAt      string  `json:"created_at"`
}

// Amount returns the amount in satang, treating absence as zero.
func (t Transaction) Amount() int64 {
	if t.AmountSatang == nil {
		return 0
	}
	return *t.AmountSatang
}

// AmountTHB converts satang to major currency units.
func (t Transaction) AmountTHB() float64 {
	return float64(t.Amount()) / 100
}

// HasStatus compares case-insensitively; a missing status never matches.
func (t Transaction) HasStatus(status string) bool {
	return t.Status != nil && strings.EqualFold(*t.Status, status)
}

// ChannelName returns the lower-cased channel, empty when absent.
func (t Transaction) ChannelName() string {
	if t.Channel == nil {
		return ""
	}
	return strings.ToLower(*t.Channel)
}

// CreatedTime parses created_at; ok is false when it does not parse.
func (t Transaction) CreatedTime(loc *time.Location) (time.Time, bool) {
	return ParseFlexibleTime(t.CreatedAt, loc)
}
