package services

import (
	"math"
	"strings"
	"time"

	"github.com/maxaizer/jobhub-importer/internal/domain/models"
)

const namedZoneLayout = "Mon, 2 Jan 2006 15:04:05 MST"

// zoneOffsets resolves the abbreviations job feeds actually use. time.Parse only knows
// the ones of the local zone and reads any other abbreviation as +0000.
var zoneOffsets = map[string]int{
	"EST": -5, "EDT": -4,
	"CST": -6, "CDT": -5,
	"MST": -7, "MDT": -6,
	"PST": -8, "PDT": -7,
	"CET": 1, "CEST": 2,
	"BST": 1,
}

// dateLayouts are tried in order, the first match wins. Go accepts fractional seconds
// after the seconds field even when a layout does not mention them.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	namedZoneLayout,
	"2006-01-02",
	"2 Jan 2006",
}

// SameDayMarkers let an unparseable date through the freshness gate.
var SameDayMarkers = []string{"today", "oggi", "hoy", "aujourd'hui", "heute"}

// DateNormalizer turns whatever an adapter scraped as a publication date into a UTC instant.
type DateNormalizer struct {
	now func() time.Time
}

func NewDateNormalizer() *DateNormalizer {
	return &DateNormalizer{now: time.Now}
}

func (d *DateNormalizer) SetClock(now func() time.Time) {
	d.now = now
}

func (d *DateNormalizer) Now() time.Time {
	return d.now().UTC()
}

// Normalize returns false when raw carries no usable date.
func (d *DateNormalizer) Normalize(raw models.RawDate) (time.Time, bool) {
	switch value := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}
		return value.UTC(), true
	case *time.Time:
		if value == nil {
			return time.Time{}, false
		}
		return d.Normalize(*value)
	case models.Date:
		return value.Midnight(), true
	case *models.Date:
		if value == nil {
			return time.Time{}, false
		}
		return value.Midnight(), true
	case string:
		return d.parse(value)
	default:
		return time.Time{}, false
	}
}

func (d *DateNormalizer) parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, models.OlderSentinel) {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if layout == namedZoneLayout {
			if parsed, ok := resolveZoneAbbreviation(parsed); ok {
				return parsed.UTC(), true
			}
			continue
		}
		return parsed.UTC(), true
	}

	now := d.Now()
	if strings.Contains(value, now.Format("2006-01-02")) {
		return now, true
	}
	return time.Time{}, false
}

// resolveZoneAbbreviation applies the real offset to a time parsed with an abbreviation
// time.Parse did not know. Unknown abbreviations are rejected.
func resolveZoneAbbreviation(t time.Time) (time.Time, bool) {
	name, offset := t.Zone()
	switch {
	case offset != 0:
		return t, true
	case name == "" || name == "UTC" || name == "GMT" || name == "UT" || name == "Z":
		return t, true
	}
	hours, ok := zoneOffsets[name]
	if !ok {
		return time.Time{}, false
	}
	return t.Add(-time.Duration(hours) * time.Hour), true
}

// IsFresh accepts raw when it is at most windowDays whole days old. An unparseable
// string still passes if it says the job is from today.
func (d *DateNormalizer) IsFresh(raw models.RawDate, windowDays int) bool {
	normalized, ok := d.Normalize(raw)
	if !ok {
		text, isString := raw.(string)
		return isString && hasSameDayMarker(text)
	}
	return ageInDays(d.Now(), normalized) <= windowDays
}

func ageInDays(now, t time.Time) int {
	return int(math.Floor(now.Sub(t).Hours() / 24))
}

func hasSameDayMarker(text string) bool {
	text = strings.ToLower(text)
	for _, marker := range SameDayMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
