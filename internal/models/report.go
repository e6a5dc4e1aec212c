package models

import "strings"

// Report is a moderation report snapshot fetched from the marketplace
// backend. Only the status participates in dashboard aggregation.
type Report struct {
	ID           int64   `json:"id"`
	ReportStatus *string `json:"report_status"`
}

// IsPending reports whether the status equals "pending" ignoring case.
// A missing status never matches.
func (r Report) IsPending() bool {
	return r.ReportStatus != nil && strings.EqualFold(*r.ReportStatus, "pending")
}
