package scheduler

import (
	"fmt"
	"time"
)

// dailyAt fires once a day at hh:mm in loc. It satisfies gron.Schedule; gron's
// own At schedule works in host local time, which may differ from the
// configured streak timezone.
type dailyAt struct {
	loc    *time.Location
	hour   int
	minute int
}

func parseDailyAt(clock string, loc *time.Location) (dailyAt, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return dailyAt{}, fmt.Errorf("invalid check time %q: %w", clock, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return dailyAt{loc: loc, hour: t.Hour(), minute: t.Minute()}, nil
}

func (d dailyAt) Next(t time.Time) time.Time {
	now := t.In(d.loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), d.hour, d.minute, 0, 0, d.loc)
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, d.hour, d.minute, 0, 0, d.loc)
	}
	return next
}
