package util

import (
	"os"
	"sort"

	"golang.org/x/exp/constraints"
)

func Min[A constraints.Ordered](a A, b A) A {
	if a < b {
		return a
	}
	return b
}

// CeilDiv rounds the quotient up; n and k must be non-negative with
// k > 0.
func CeilDiv[A constraints.Integer](n A, k A) A {
	return (n + k - 1) / k
}

// SortedKeys returns map keys in sorted order so iteration stays
// deterministic.
func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func ReadFileOrPanic(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Couldn't read file: " + err.Error())
	}
	return string(data)
}
