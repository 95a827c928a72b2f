package services

import "time"

// Clock supplies "now" in the zone that defines calendar days for statistics.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	location *time.Location
}

func NewClock(location *time.Location) Clock {
	if location == nil {
		location = time.Local
	}
	return systemClock{location: location}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.location)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time, location *time.Location) string {
	return t.In(location).Format("2006-01-02")
}
