package model

// Score is the root of the parsed graph. It is built once per parse and
// never mutated afterwards; re-parsing produces a fresh graph.
type Score struct {
	Metadata Metadata  `json:"metadata"`
	Sections []Section `json:"sections"`
}

// Metadata holds the declared header values, with defaults filled in
// for anything the source omitted.
type Metadata struct {
	Title       string `json:"title"`
	Tuning      string `json:"tuning"`
	Beat        string `json:"beat"`
	BarsPerLine int    `json:"bars_per_line"`
}

type Section struct {
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
	Bars      []Bar  `json:"bars"`
}

// Bar carries its notes, independently-anchored chord symbols, and the
// repeat/volta bracket flags. Brackets spanning several bars exist only
// as these per-bar flags; balance is the validator's concern.
type Bar struct {
	Notes  []Note  `json:"notes"`
	Chords []Chord `json:"chords"`

	RepeatStart bool `json:"repeat_start"`
	RepeatEnd   bool `json:"repeat_end"`
	VoltaStart  bool `json:"volta_start"`
	VoltaEnd    bool `json:"volta_end"`
	// VoltaNumber is 0 unless the bar is part of a volta bracket.
	VoltaNumber int `json:"volta_number,omitempty"`
}

type NoteKind int

const (
	KindNote NoteKind = iota
	KindRest
	KindVoicing
)

// Note is one of three variants: a plain note (string/fret), a rest, or
// a chord voicing whose Group members sound together and share the
// parent's duration. Duration is always an exact quarter-note count,
// already scaled when the note sits inside a tuplet.
type Note struct {
	Kind     NoteKind `json:"kind"`
	String   int      `json:"string,omitempty"`
	Fret     int      `json:"fret"`
	IsMuted  bool     `json:"is_muted,omitempty"`
	Duration Rational `json:"duration"`
	Group    []Note   `json:"group,omitempty"`
}

// Chord is a chord symbol such as "Am7". Position indexes into the
// bar's note sequence where the symbol is anchored.
type Chord struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}
