package order

import (
	"regexp"
	"strconv"
	"strings"
)

// Older floor data encoded the course in free text ("Wave 2" inside the item
// notes) instead of a typed field. Runtime code never parses text, since Wave
// is a first-class field on Item and DraftItem, but imported legacy records
// still need the old fallback chain: explicit field, then note tag, then
// category.

var waveTagPattern = regexp.MustCompile(`(?i)\bwave\s*(\d+)\b`)

// ParseWaveTag extracts a wave number from a legacy note. Returns 0 when the
// note carries no tag.
func ParseWaveTag(notes string) int {
	match := waveTagPattern.FindStringSubmatch(notes)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// CourseWave maps a menu category to its customary course when a legacy record
// has neither a wave field nor a note tag.
func CourseWave(category string) int {
	switch strings.ToLower(category) {
	case "drinks", "beverages", "starters", "appetizers":
		return 1
	case "mains", "entrees", "grill":
		return 2
	case "desserts", "pastry":
		return 3
	default:
		return 1
	}
}

// ImportWave resolves a legacy record's wave through the historical fallback
// chain. Import/migration use only.
func ImportWave(explicit int, notes, category string) int {
	if explicit > 0 {
		return explicit
	}
	if n := ParseWaveTag(notes); n > 0 {
		return n
	}
	return CourseWave(category)
}
