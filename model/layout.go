package model

// Column is a contiguous run of bars displayed together: the half-open
// index range [Start, End) into the section's bar sequence.
type Column struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Line is a row of columns, again a half-open range of column indices.
type Line struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SectionLayout is the column/line/page grouping for one section.
// BarColumn maps each bar index to the column holding it, so nothing in
// the score graph needs a back-reference to layout state.
type SectionLayout struct {
	Columns   []Column `json:"columns"`
	Lines     []Line   `json:"lines"`
	Pages     [][]int  `json:"pages"`
	BarColumn []int    `json:"bar_column"`
}

// Assignment is the layout engine's output, parallel to Score.Sections.
type Assignment struct {
	Sections []SectionLayout `json:"sections"`
}
