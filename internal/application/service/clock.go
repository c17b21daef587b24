package service

import (
	"time"

	"github.com/sangkips/storepos-api/internal/domain/entity"
)

// StoreClock maps instants onto the store's business calendar. All day
// boundaries (today's register, today's sales, report buckets) are taken in
// the store timezone.
type StoreClock struct {
	loc *time.Location
	now func() time.Time
}

// NewStoreClock creates a clock in loc. A nil now uses time.Now.
func NewStoreClock(loc *time.Location, now func() time.Time) *StoreClock {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &StoreClock{loc: loc, now: now}
}

// Location returns the store timezone.
func (c *StoreClock) Location() *time.Location {
	return c.loc
}

// Now returns the current time in the store timezone.
func (c *StoreClock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current business date as YYYY-MM-DD.
func (c *StoreClock) Today() string {
	return c.BusinessDate(c.now())
}

// BusinessDate returns the business date t falls on.
func (c *StoreClock) BusinessDate(t time.Time) string {
	return t.In(c.loc).Format(entity.BusinessDateLayout)
}

// ParseDate parses a YYYY-MM-DD date as midnight in the store timezone.
func (c *StoreClock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(entity.BusinessDateLayout, s, c.loc)
}

// DayBounds returns the first and last instant of the business day t falls on.
func (c *StoreClock) DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(c.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// RangeBounds returns [start of from, end of to] for two YYYY-MM-DD dates.
func (c *StoreClock) RangeBounds(from, to string) (time.Time, time.Time, error) {
	start, err := c.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := c.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	_, end = c.DayBounds(end)
	return start, end, nil
}
