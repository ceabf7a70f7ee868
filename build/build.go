package build

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tabscribe/tabscribe/analyze"
	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/model"
)

// Defect signals an internal invariant broken after validation passed.
// It marks a bug in the pipeline, never bad user input.
type Defect struct {
	Msg string
}

func (d *Defect) Error() string {
	return "score builder defect: " + d.Msg
}

func defect(format string, args ...any) *Defect {
	return &Defect{Msg: fmt.Sprintf(format, args...)}
}

// context carries the most recent explicit attribute values for the
// left-to-right inheritance fold. A fresh context starts every section.
type context struct {
	stringNum int
	duration  string
}

func newContext() context {
	return context{stringNum: 1, duration: constants.DefaultDuration}
}

// Run walks a validated RawScore and produces the immutable score
// graph, resolving attribute inheritance in strict source order.
func Run(raw *analyze.RawScore) (*model.Score, error) {
	meta, err := buildMetadata(raw)
	if err != nil {
		return nil, err
	}

	score := &model.Score{Metadata: meta}
	for _, rs := range raw.Sections {
		if rs.IsDefault && len(rs.Bars) == 0 {
			// a leading default section that never collected a bar is
			// an artifact of parsing, not part of the score
			continue
		}
		section, err := buildSection(rs)
		if err != nil {
			return nil, err
		}
		score.Sections = append(score.Sections, section)
	}
	return score, nil
}

func buildMetadata(raw *analyze.RawScore) (model.Metadata, error) {
	meta := model.Metadata{
		Title:       raw.Metadata["title"],
		Tuning:      constants.DefaultTuning,
		Beat:        constants.DefaultBeat,
		BarsPerLine: constants.DefaultBarsPerLine,
	}
	if tuning, ok := raw.Metadata["tuning"]; ok {
		meta.Tuning = tuning
	}
	if beat, ok := raw.Metadata["beat"]; ok {
		meta.Beat = beat
	}
	if bpl, ok := raw.Metadata["bars_per_line"]; ok {
		n, err := strconv.Atoi(bpl)
		if err != nil || n < 1 {
			return meta, defect("unvalidated bars_per_line %q", bpl)
		}
		meta.BarsPerLine = n
	}
	return meta, nil
}

func buildSection(rs analyze.RawSection) (model.Section, error) {
	section := model.Section{Name: rs.Name, IsDefault: rs.IsDefault}
	ctx := newContext()

	for _, rb := range rs.Bars {
		bar, err := buildBar(rb, &ctx)
		if err != nil {
			return section, err
		}
		section.Bars = append(section.Bars, bar)
	}
	return section, nil
}

func buildBar(rb analyze.RawBar, ctx *context) (model.Bar, error) {
	bar := model.Bar{
		RepeatStart: rb.RepeatStart,
		RepeatEnd:   rb.RepeatEnd,
		VoltaStart:  rb.VoltaStart,
		VoltaEnd:    rb.VoltaEnd,
		VoltaNumber: rb.VoltaNumber,
	}

	for _, tok := range rb.Tokens {
		switch tok.Kind {
		case analyze.TokenChord:
			if tok.Chord == "" {
				return bar, defect("chord symbol without a name at line %d", tok.Line)
			}
			bar.Chords = append(bar.Chords, model.Chord{
				Name:     tok.Chord,
				Position: len(bar.Notes),
			})

		case analyze.TokenRest:
			d, err := resolveDuration(tok, ctx)
			if err != nil {
				return bar, err
			}
			bar.Notes = append(bar.Notes, model.Note{Kind: model.KindRest, Duration: d})

		case analyze.TokenNote:
			note, err := buildNote(tok, ctx)
			if err != nil {
				return bar, err
			}
			bar.Notes = append(bar.Notes, note)

		case analyze.TokenVoicing:
			note, err := buildVoicing(tok, ctx)
			if err != nil {
				return bar, err
			}
			bar.Notes = append(bar.Notes, note)

		default:
			return bar, defect("unknown token kind %d at line %d", tok.Kind, tok.Line)
		}
	}
	return bar, nil
}

func buildNote(tok analyze.Token, ctx *context) (model.Note, error) {
	note := model.Note{Kind: model.KindNote}

	if tok.String == "" {
		note.String = ctx.stringNum
	} else {
		n, err := strconv.Atoi(tok.String)
		if err != nil {
			return note, defect("unvalidated string %q at line %d", tok.String, tok.Line)
		}
		note.String = n
		ctx.stringNum = n
	}

	if strings.EqualFold(tok.Fret, "x") {
		note.IsMuted = true
	} else {
		n, err := strconv.Atoi(tok.Fret)
		if err != nil {
			return note, defect("unvalidated fret %q at line %d", tok.Fret, tok.Line)
		}
		note.Fret = n
	}

	d, err := resolveDuration(tok, ctx)
	if err != nil {
		return note, err
	}
	note.Duration = d
	return note, nil
}

func buildVoicing(tok analyze.Token, ctx *context) (model.Note, error) {
	note := model.Note{Kind: model.KindVoicing}

	d, err := resolveDuration(tok, ctx)
	if err != nil {
		return note, err
	}
	note.Duration = d

	for _, member := range tok.Group {
		n, err := strconv.Atoi(member.String)
		if err != nil {
			return note, defect("unvalidated string %q at line %d", member.String, member.Line)
		}
		m := model.Note{Kind: model.KindNote, String: n, Duration: d}
		if strings.EqualFold(member.Fret, "x") {
			m.IsMuted = true
		} else {
			f, err := strconv.Atoi(member.Fret)
			if err != nil {
				return note, defect("unvalidated fret %q at line %d", member.Fret, member.Line)
			}
			m.Fret = f
		}
		note.Group = append(note.Group, m)
	}
	return note, nil
}

// resolveDuration applies duration inheritance and tuplet scaling. The
// inherited value is the nominal code; the tuplet factor never carries
// over to the next note.
func resolveDuration(tok analyze.Token, ctx *context) (model.Rational, error) {
	code := tok.Duration
	if code == "" {
		code = ctx.duration
	} else {
		ctx.duration = code
	}
	d, err := model.ParseDuration(code)
	if err != nil {
		return model.Rational{}, defect("unvalidated duration %q at line %d", code, tok.Line)
	}
	if tok.Tuplet > 0 {
		factor, err := model.TupletFactor(tok.Tuplet)
		if err != nil {
			return model.Rational{}, defect("unvalidated tuplet count %d at line %d", tok.Tuplet, tok.Line)
		}
		d = d.Mul(factor)
	}
	return d, nil
}
