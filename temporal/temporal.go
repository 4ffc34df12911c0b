// Package temporal implements the "date-double" representation used by the
// Value model and function library for DATE, TIME, and DATE_TIME values: a
// float64 whose integer part counts days since a fixed epoch and whose
// fractional part is the time of day.
package temporal

import (
	"fmt"
	"strconv"
	"time"
)

// epoch is the Jet/VBA date-double's day zero: December 30, 1899.
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// DateDouble is the arithmetic representation of a temporal value: days
// since epoch in the integer part, fraction-of-day in the fractional part.
// Arithmetic on DATE/TIME/DATE_TIME values operates directly on this
// float64.
type DateDouble float64

// FromTime converts a calendar time to its date-double representation,
// measured relative to the Jet/VBA epoch.
func FromTime(t time.Time) DateDouble {
	d := t.Sub(epoch)
	return DateDouble(d.Hours() / 24)
}

// ToTime converts a date-double back to a calendar time in UTC, rounded to
// the nearest second.
func (d DateDouble) ToTime() time.Time {
	days := float64(d)
	whole := int64(days)
	frac := days - float64(whole)
	if frac < 0 {
		frac += 1
		whole--
	}
	t := epoch.AddDate(0, 0, int(whole))
	secs := int64(frac*24*3600 + 0.5)
	return t.Add(time.Duration(secs) * time.Second)
}

// Now returns the current instant as a date-double.
func Now() DateDouble {
	return FromTime(time.Now().UTC())
}

// Kind distinguishes which part of a date-double a Value renders: the
// calendar date, the time of day, or both.
type Kind int

const (
	KindDate Kind = iota
	KindTime
	KindDateTime
)

// Config holds the locale-dependent formatting settings for a temporal
// Value rendered as a string via CStr/Format. Format and Format24 read only
// DateSeparator and TimeSeparator: the layouts themselves are fixed
// (month/day/year, h:mm:ss with AM/PM, zero-padded HH:mm:ss), and DateFormat,
// TimeFormat12 and TimeFormat24 are not interpreted.
type Config struct {
	DateFormat    string
	TimeFormat12  string
	TimeFormat24  string
	DateSeparator string
	TimeSeparator string
}

// DefaultConfig returns the US-locale formatting defaults.
func DefaultConfig() Config {
	return Config{
		DateFormat:    "M/d/yyyy",
		TimeFormat12:  "h:mm:ss a",
		TimeFormat24:  "H:mm:ss",
		DateSeparator: "/",
		TimeSeparator: ":",
	}
}

// Format renders d according to kind and cfg, using the 12-hour time
// convention for the time portion of a DATE_TIME (rendered as
// "<date> <time12>").
func (d DateDouble) Format(cfg Config, kind Kind) string {
	t := d.ToTime()
	switch kind {
	case KindDate:
		return formatDate(t, cfg)
	case KindTime:
		return formatTime12(t, cfg)
	default:
		return formatDate(t, cfg) + " " + formatTime12(t, cfg)
	}
}

// Format24 renders d like Format but using the 24-hour time convention
// ("<time24>" with no AM/PM suffix) for the time portion.
func (d DateDouble) Format24(cfg Config, kind Kind) string {
	t := d.ToTime()
	switch kind {
	case KindDate:
		return formatDate(t, cfg)
	case KindTime:
		return formatTime24(t, cfg)
	default:
		return formatDate(t, cfg) + " " + formatTime24(t, cfg)
	}
}

func formatDate(t time.Time, cfg Config) string {
	sep := cfg.DateSeparator
	return strconv.Itoa(int(t.Month())) + sep + strconv.Itoa(t.Day()) + sep + strconv.Itoa(t.Year())
}

func formatTime12(t time.Time, cfg Config) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	ampm := "AM"
	if t.Hour() >= 12 {
		ampm = "PM"
	}
	sep := cfg.TimeSeparator
	return fmt.Sprintf("%d%s%02d%s%02d %s", h, sep, t.Minute(), sep, t.Second(), ampm)
}

func formatTime24(t time.Time, cfg Config) string {
	sep := cfg.TimeSeparator
	return fmt.Sprintf("%02d%s%02d%s%02d", t.Hour(), sep, t.Minute(), sep, t.Second())
}
