package models

import json "github.com/goccy/go-json"

// StreakRecord counts consecutive calendar days with a qualifying update.
// Dates are calendar-date strings; an empty string means absent and is
// encoded as JSON null.
type StreakRecord struct {
	Count          int    `json:"count"`
	StartDate      string `json:"startDate"`
	LastUpdateDate string `json:"lastUpdateDate"`
}

// IsZero reports whether the record carries no active streak.
func (r StreakRecord) IsZero() bool {
	return r.Count == 0 && r.StartDate == "" && r.LastUpdateDate == ""
}

// Advance returns the record after a qualifying update on today, given the
// calendar date before it. The second result is false when the record was
// already advanced today and nothing changed.
func (r StreakRecord) Advance(today, yesterday string) (StreakRecord, bool) {
	if r.LastUpdateDate == today {
		return r, false
	}

	// A zero count is treated as a fresh start even when lastUpdateDate is stale.
	if r.LastUpdateDate == yesterday || r.Count == 0 {
		r.Count++
		r.LastUpdateDate = today
		if r.Count == 1 {
			r.StartDate = today
		}
		return r, true
	}

	return StreakRecord{Count: 1, StartDate: today, LastUpdateDate: today}, true
}

func nullableDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r StreakRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Count          int     `json:"count"`
		StartDate      *string `json:"startDate"`
		LastUpdateDate *string `json:"lastUpdateDate"`
	}{
		Count:          r.Count,
		StartDate:      nullableDate(r.StartDate),
		LastUpdateDate: nullableDate(r.LastUpdateDate),
	})
}
