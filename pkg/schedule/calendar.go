package schedule

import (
	"strings"
	"time"

	"milk-platform-be/internal/pkg/apperror"
)

const dateLayout = "2006-01-02"

// Calendar pins "now" and the business time zone used for every date-only comparison.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

func NewCalendar(loc *time.Location, now func() time.Time) Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return Calendar{loc: loc, now: now}
}

func (c Calendar) Location() *time.Location {
	return c.loc
}

func (c Calendar) Now() time.Time {
	return c.now().In(c.loc)
}

func (c Calendar) Today() time.Time {
	return DateOf(c.Now())
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns local midnight of that date.
func (c Calendar) ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(dateLayout, raw, c.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperror.Validation("Invalid date: %s", raw)
	}
	return DateOf(t.In(c.loc)), nil
}

// DateOf truncates t to midnight in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func AddDays(day time.Time, n int) time.Time {
	return day.AddDate(0, 0, n)
}

// DaysBetween counts whole calendar days from a to b, negative when b is earlier.
func DaysBetween(a, b time.Time) int {
	a, b = DateOf(a), DateOf(b)
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
