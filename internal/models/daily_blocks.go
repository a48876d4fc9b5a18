package models

import "math"

// DailyBlocks maps a calendar-date string to the number of blocking events
// recorded that day. Entries are never pruned.
type DailyBlocks map[string]int

func (d DailyBlocks) Get(date string) int {
	return d[date]
}

func (d DailyBlocks) Inc(date string) int {
	d[date]++
	return d[date]
}

// DailyStats is derived on read and never stored.
type DailyStats struct {
	Date         string `json:"date"`
	BlocksToday  int    `json:"blocksToday"`
	MinutesSaved int    `json:"minutesSaved"`
}

func NewDailyStats(date string, blocks int, minutesPerBlock float64) DailyStats {
	return DailyStats{
		Date:         date,
		BlocksToday:  blocks,
		MinutesSaved: int(math.Floor(float64(blocks) * minutesPerBlock)),
	}
}
