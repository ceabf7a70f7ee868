package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tabscribe/tabscribe/analyze"
	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/model"
)

type Kind int

const (
	DurationMismatch Kind = iota
	InvalidTuning
	StringOutOfRange
	FretOutOfRange
	UnbalancedBracket
	InvalidMetadata
)

func (k Kind) String() string {
	switch k {
	case DurationMismatch:
		return "DurationMismatch"
	case InvalidTuning:
		return "InvalidTuning"
	case StringOutOfRange:
		return "StringOutOfRange"
	case FretOutOfRange:
		return "FretOutOfRange"
	case UnbalancedBracket:
		return "UnbalancedBracket"
	case InvalidMetadata:
		return "InvalidMetadata"
	}
	return "Unknown"
}

// Error is the first fatal violation found in source order. Section and
// Bar are indices into the raw score (-1 when not applicable); Line is
// the line in the normalized text.
type Error struct {
	Kind    Kind
	Section int
	Bar     int
	Line    int
	Msg     string
}

func (e *Error) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Section >= 0 && e.Bar >= 0 {
		loc = fmt.Sprintf("section %d bar %d (line %d)", e.Section, e.Bar, e.Line)
	}
	return fmt.Sprintf("%s: %s: %s", loc, e.Kind, e.Msg)
}

var knownKeys = map[string]bool{
	"title": true, "tuning": true, "beat": true, "bars_per_line": true,
}

// Run checks musical well-formedness of the raw score and returns the
// first error in source order, or nil. It never modifies its input.
func Run(raw *analyze.RawScore) error {
	tuning, beat, err := checkMetadata(raw)
	if err != nil {
		return err
	}
	stringCount, _ := model.StringCount(tuning)
	expected, _ := model.BarDuration(beat)

	for si, section := range raw.Sections {
		if err := checkSection(si, section, stringCount, expected); err != nil {
			return err
		}
	}
	return nil
}

func checkMetadata(raw *analyze.RawScore) (tuning, beat string, err error) {
	tuning = constants.DefaultTuning
	beat = constants.DefaultBeat

	for _, key := range raw.Keys {
		value := raw.Metadata[key]
		if !knownKeys[key] {
			return "", "", &Error{Kind: InvalidMetadata, Section: -1, Bar: -1,
				Msg: fmt.Sprintf("unknown metadata key %q", key)}
		}
		switch key {
		case "tuning":
			if _, ok := model.StringCount(value); !ok {
				return "", "", &Error{Kind: InvalidTuning, Section: -1, Bar: -1,
					Msg: fmt.Sprintf("unknown tuning %q, want one of %v", value, model.Tunings())}
			}
			tuning = value
		case "beat":
			if _, derr := model.BarDuration(value); derr != nil {
				return "", "", &Error{Kind: InvalidMetadata, Section: -1, Bar: -1,
					Msg: fmt.Sprintf("invalid beat %q", value)}
			}
			beat = value
		case "bars_per_line":
			if n, aerr := strconv.Atoi(value); aerr != nil || n < 1 {
				return "", "", &Error{Kind: InvalidMetadata, Section: -1, Bar: -1,
					Msg: fmt.Sprintf("invalid bars_per_line %q", value)}
			}
		}
	}
	return tuning, beat, nil
}

// checkSection walks the section's bars once, checking ranges and exact
// duration sums, and runs the bracket stack. Brackets and duration
// inheritance are both section-scoped.
func checkSection(si int, section analyze.RawSection, stringCount int, expected model.Rational) error {
	lastDuration := constants.DefaultDuration
	openRepeats := 0
	voltaOpen := false
	voltaNext := 1 // expected number of the next volta group
	lastLine := section.Line

	for bi, bar := range section.Bars {
		lastLine = bar.Line
		fail := func(kind Kind, format string, args ...any) error {
			return &Error{Kind: kind, Section: si, Bar: bi, Line: bar.Line,
				Msg: fmt.Sprintf(format, args...)}
		}

		if bar.RepeatStart {
			openRepeats++
			// a fresh repeat group starts its volta numbering over
			voltaNext = 1
		}

		if bar.VoltaStart {
			if bar.VoltaNumber != voltaNext {
				return fail(UnbalancedBracket,
					"volta %d out of order, want %d", bar.VoltaNumber, voltaNext)
			}
			voltaOpen = true
		}
		if bar.VoltaEnd {
			voltaOpen = false
			voltaNext = bar.VoltaNumber + 1
		}

		if bar.RepeatEnd {
			if openRepeats == 0 {
				return fail(UnbalancedBracket, "repeat end without start")
			}
			openRepeats--
		}

		total := model.Rational{Num: 0, Den: 1}
		for _, tok := range bar.Tokens {
			switch tok.Kind {
			case analyze.TokenChord:
				continue
			case analyze.TokenNote:
				if err := checkNoteRange(tok, stringCount, fail); err != nil {
					return err
				}
			case analyze.TokenVoicing:
				for _, member := range tok.Group {
					if err := checkNoteRange(member, stringCount, fail); err != nil {
						return err
					}
				}
			}

			code := tok.Duration
			if code == "" {
				code = lastDuration
			} else {
				lastDuration = code
			}
			d, err := model.ParseDuration(code)
			if err != nil {
				// tokenizer has already vetted explicit codes
				return fail(DurationMismatch, "invalid duration %q", code)
			}
			if tok.Tuplet > 0 {
				factor, ferr := model.TupletFactor(tok.Tuplet)
				if ferr != nil {
					return fail(DurationMismatch, "invalid tuplet count %d", tok.Tuplet)
				}
				d = d.Mul(factor)
			}
			total = total.Add(d)
		}

		if !total.Equal(expected) {
			return fail(DurationMismatch, "bar sums to %s, want %s", total, expected)
		}
	}

	if openRepeats > 0 {
		return &Error{Kind: UnbalancedBracket, Section: si, Bar: len(section.Bars) - 1,
			Line: lastLine, Msg: "repeat bracket never closed"}
	}
	if voltaOpen {
		return &Error{Kind: UnbalancedBracket, Section: si, Bar: len(section.Bars) - 1,
			Line: lastLine, Msg: "volta bracket never closed"}
	}
	return nil
}

func checkNoteRange(tok analyze.Token, stringCount int, fail func(Kind, string, ...any) error) error {
	if tok.String != "" {
		n, err := strconv.Atoi(tok.String)
		if err != nil || n < 1 || n > stringCount {
			return fail(StringOutOfRange, "string %s not in [1, %d]", tok.String, stringCount)
		}
	}
	if tok.Fret != "" && !strings.EqualFold(tok.Fret, "x") {
		if n, err := strconv.Atoi(tok.Fret); err != nil || n < 0 {
			return fail(FretOutOfRange, "fret %q is not a non-negative integer", tok.Fret)
		}
	}
	return nil
}
