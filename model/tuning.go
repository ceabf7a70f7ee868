package model

import "github.com/tabscribe/tabscribe/util"

// stringCounts maps the recognized tuning names to how many courses the
// instrument has. Strings are numbered from 1 (highest) up.
var stringCounts = map[string]int{
	"guitar":  6,
	"guitar7": 7,
	"bass":    4,
	"bass5":   5,
	"ukulele": 4,
}

// StringCount returns the number of strings for a tuning name, or false
// when the tuning is unknown.
func StringCount(tuning string) (int, bool) {
	n, ok := stringCounts[tuning]
	return n, ok
}

// Tunings lists the recognized tuning names in sorted order.
func Tunings() []string {
	return util.SortedKeys(stringCounts)
}
