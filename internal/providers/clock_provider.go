package providers

import (
	"mindful/internal/structures"
	"time"
)

// DateLayout is the calendar-date string format used for streak and counter keys.
const DateLayout = "2006-01-02"

type ClockInterface interface {
	Now() time.Time
	Today() string
	Yesterday() string
	Dates() (today, yesterday string)
}

type Clock struct {
	loc *time.Location
	now func() time.Time
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) midnight() time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

func (c *Clock) Today() string {
	return c.midnight().Format(DateLayout)
}

// Yesterday steps back one calendar day from local midnight, so DST shifts
// never skip or repeat a date.
func (c *Clock) Yesterday() string {
	return c.midnight().AddDate(0, 0, -1).Format(DateLayout)
}

// Dates returns today and yesterday from a single read of the current time,
// so a call that straddles midnight still sees adjacent days.
func (c *Clock) Dates() (today, yesterday string) {
	m := c.midnight()
	return m.Format(DateLayout), m.AddDate(0, 0, -1).Format(DateLayout)
}

func NewClockProvider(conf *structures.Config) (ClockInterface, error) {
	loc := time.Local
	if conf.Streak.Timezone != "" {
		l, err := time.LoadLocation(conf.Streak.Timezone)
		if err != nil {
			return nil, err
		}
		loc = l
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// NewFixedClock returns a clock whose current time is read from now. Used by tests
// and tools that replay a given day.
func NewFixedClock(loc *time.Location, now func() time.Time) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: now}
}
