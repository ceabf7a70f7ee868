package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration codes are the standard denominators: 4 is a quarter (one
// beat, 1/1), 8 an eighth (1/2) and so on. A trailing dot multiplies by
// 3/2. Double dots are not part of the notation.
var validDurationCodes = map[string]bool{
	"1": true, "2": true, "4": true, "8": true,
	"16": true, "32": true, "64": true,
}

// ParseDuration turns a duration literal like "8" or "4." into an exact
// quarter-note count.
func ParseDuration(code string) (Rational, error) {
	dotted := strings.HasSuffix(code, ".")
	base := strings.TrimSuffix(code, ".")
	if !validDurationCodes[base] || strings.Contains(base, ".") {
		return Rational{}, fmt.Errorf("invalid duration %q", code)
	}
	n, _ := strconv.ParseInt(base, 10, 64)
	d := NewRational(4, n)
	if dotted {
		d = d.Mul(NewRational(3, 2))
	}
	return d, nil
}

// TupletFactor is the scale applied to every note inside an n-tuplet:
// the largest power of two below n over n, so the group fills the time
// of the substituted plain figure (3 -> 2/3, 5 -> 4/5, 7 -> 4/7).
func TupletFactor(count int) (Rational, error) {
	if count < 2 {
		return Rational{}, fmt.Errorf("invalid tuplet count %d", count)
	}
	pow := int64(1)
	for pow*2 < int64(count) {
		pow *= 2
	}
	return NewRational(pow, int64(count)), nil
}

// BarDuration is the expected quarter-note total for a time signature,
// e.g. 4/4 -> 4/1, 6/8 -> 3/1.
func BarDuration(beat string) (Rational, error) {
	parts := strings.Split(beat, "/")
	if len(parts) != 2 {
		return Rational{}, fmt.Errorf("invalid beat %q", beat)
	}
	num, err1 := strconv.ParseInt(parts[0], 10, 64)
	den, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil || num < 1 || den < 1 {
		return Rational{}, fmt.Errorf("invalid beat %q", beat)
	}
	return NewRational(num, den).Mul(NewRational(4, 1)), nil
}
