package midi

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/model"
)

// openPitches maps each tuning to the midi pitch of every open string,
// indexed by string number - 1 (string 1 is the highest course).
var openPitches = map[string][]uint8{
	"guitar":  {64, 59, 55, 50, 45, 40},
	"guitar7": {64, 59, 55, 50, 45, 40, 35},
	"bass":    {43, 38, 33, 28},
	"bass5":   {43, 38, 33, 28, 23},
	"ukulele": {69, 64, 60, 67},
}

const velocity = 90

// FromScore renders a score into a standard midi file, one track per
// section. Repeats and voltas are not unrolled; the export plays the
// bars in source order.
func FromScore(score *model.Score) (*smf.SMF, error) {
	pitches, ok := openPitches[score.Metadata.Tuning]
	if !ok {
		return nil, fmt.Errorf("no pitch table for tuning %q", score.Metadata.Tuning)
	}
	meterNum, meterDen, err := parseMeter(score.Metadata.Beat)
	if err != nil {
		return nil, err
	}

	clock := smf.MetricTicks(constants.TicksPerQuarter)
	s := smf.New()
	s.TimeFormat = clock

	for i, section := range score.Sections {
		var tr smf.Track
		name := section.Name
		if section.IsDefault {
			name = score.Metadata.Title
		}
		tr.Add(0, smf.MetaTrackSequenceName(name))
		if i == 0 {
			tr.Add(0, smf.MetaTempo(120))
		}
		tr.Add(0, smf.MetaMeter(meterNum, meterDen))

		delta := uint32(0)
		for _, bar := range section.Bars {
			chordAt := make(map[int]string)
			for _, chord := range bar.Chords {
				chordAt[chord.Position] = chord.Name
			}
			for ni, note := range bar.Notes {
				if name, ok := chordAt[ni]; ok {
					tr.Add(delta, smf.MetaText(name))
					delta = 0
				}
				delta = addNote(&tr, delta, note, pitches)
			}
		}
		tr.Close(delta)
		if err := s.Add(tr); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// addNote emits the note's events and returns the delta to carry into
// the next one. Rests and muted notes emit nothing and just stretch the
// gap.
func addNote(tr *smf.Track, delta uint32, note model.Note, pitches []uint8) uint32 {
	ticks := durationTicks(note.Duration)

	switch note.Kind {
	case model.KindRest:
		return delta + ticks

	case model.KindVoicing:
		var sounding []uint8
		for _, member := range note.Group {
			if member.IsMuted {
				continue
			}
			sounding = append(sounding, pitch(member, pitches))
		}
		if len(sounding) == 0 {
			return delta + ticks
		}
		for _, p := range sounding {
			tr.Add(delta, gomidi.NoteOn(0, p, velocity))
			delta = 0
		}
		off := ticks
		for _, p := range sounding {
			tr.Add(off, gomidi.NoteOff(0, p))
			off = 0
		}
		return 0

	default:
		if note.IsMuted {
			return delta + ticks
		}
		p := pitch(note, pitches)
		tr.Add(delta, gomidi.NoteOn(0, p, velocity))
		tr.Add(ticks, gomidi.NoteOff(0, p))
		return 0
	}
}

func pitch(note model.Note, pitches []uint8) uint8 {
	return pitches[note.String-1] + uint8(note.Fret)
}

// durationTicks converts an exact quarter-note count to midi ticks,
// rounding half up. 960 ticks per quarter keeps dots and 3- and
// 5-tuplets exact.
func durationTicks(d model.Rational) uint32 {
	return uint32((d.Num*constants.TicksPerQuarter + d.Den/2) / d.Den)
}

func parseMeter(beat string) (uint8, uint8, error) {
	parts := strings.Split(beat, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid beat %q", beat)
	}
	num, err1 := strconv.Atoi(parts[0])
	den, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("invalid beat %q", beat)
	}
	return uint8(num), uint8(den), nil
}

// WriteFile renders the score and writes it as a .mid file.
func WriteFile(score *model.Score, path string) error {
	s, err := FromScore(score)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = s.WriteTo(f)
	return err
}
