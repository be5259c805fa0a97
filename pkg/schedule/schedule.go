// Package schedule turns the date and time strings stored on a job into a
// point in time. Creation and the expiry sweep share one Calendar so both
// agree on the reference timezone.
package schedule

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04"
	TimeSecondsLayout = "15:04:05"
)

var (
	dateLayouts = []string{DateLayout, "2006/01/02"}
	timeLayouts = []string{TimeLayout, TimeSecondsLayout}

	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

type Calendar struct {
	loc *time.Location
}

// NewCalendar loads the named IANA zone. An empty name means UTC.
func NewCalendar(tz string) (*Calendar, error) {
	if tz == "" {
		return &Calendar{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load timezone %q", tz)
	}
	return &Calendar{loc: loc}, nil
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Parse combines a date and a 24-hour clock time into a moment in the
// calendar's timezone. Offsets are not accepted.
func (c *Calendar) Parse(date, clock string) (time.Time, error) {
	day, err := parseFirst(dateLayouts, strings.TrimSpace(date), c.loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", date)
	}
	tod, err := parseFirst(timeLayouts, strings.TrimSpace(clock), time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidTime, "%q", clock)
	}

	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, c.loc), nil
}

// Normalize parses the pair and returns it rewritten in the canonical
// layouts along with the moment it denotes. Seconds are kept only when set,
// so parsing the normalized pair again yields the same moment.
func (c *Calendar) Normalize(date, clock string) (string, string, time.Time, error) {
	at, err := c.Parse(date, clock)
	if err != nil {
		return "", "", time.Time{}, err
	}

	layout := TimeLayout
	if at.Second() != 0 {
		layout = TimeSecondsLayout
	}
	return at.Format(DateLayout), at.Format(layout), at, nil
}

// Today is the calendar day of now in the reference timezone.
func (c *Calendar) Today(now time.Time) string {
	return now.In(c.loc).Format(DateLayout)
}

func parseFirst(layouts []string, value string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
