package build

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabscribe/tabscribe/analyze"
	"github.com/tabscribe/tabscribe/model"
	"github.com/tabscribe/tabscribe/preprocess"
)

func buildScore(t *testing.T, text string) *model.Score {
	raw, err := analyze.Run(preprocess.Run(text))
	assert.NoError(t, err)
	score, err := Run(raw)
	assert.NoError(t, err)
	return score
}

func TestMetadataDefaults(t *testing.T) {
	score := buildScore(t, "1-0:1")

	assert := assert.New(t)
	assert.Equal("", score.Metadata.Title)
	assert.Equal("guitar", score.Metadata.Tuning)
	assert.Equal("4/4", score.Metadata.Beat)
	assert.Equal(4, score.Metadata.BarsPerLine)
}

func TestDeclaredMetadataOverridesDefaults(t *testing.T) {
	text := "$title=\"Low End\"\n$tuning=\"bass\"\n$beat=\"3/4\"\n$bars_per_line=\"6\"\n1-0:4 1 1"
	score := buildScore(t, text)

	assert := assert.New(t)
	assert.Equal("Low End", score.Metadata.Title)
	assert.Equal("bass", score.Metadata.Tuning)
	assert.Equal("3/4", score.Metadata.Beat)
	assert.Equal(6, score.Metadata.BarsPerLine)
}

func TestEmptyDefaultSectionIsDropped(t *testing.T) {
	score := buildScore(t, "$title=\"Song\"\n\n[Intro]\n1-0:1")

	assert := assert.New(t)
	assert.Len(score.Sections, 1)
	assert.Equal("Intro", score.Sections[0].Name)
	assert.False(score.Sections[0].IsDefault)
}

func TestStringAndDurationInheritance(t *testing.T) {
	score := buildScore(t, "3-5:8 7 2-0 4")
	notes := score.Sections[0].Bars[0].Notes

	assert := assert.New(t)
	assert.Equal(3, notes[0].String)
	assert.Equal(5, notes[0].Fret)

	// fret-only token stays on string 3 and keeps the eighth
	assert.Equal(3, notes[1].String)
	assert.Equal(7, notes[1].Fret)
	assert.True(notes[1].Duration.Equal(model.NewRational(1, 2)))

	// explicit string updates the context for the next fret-only token
	assert.Equal(2, notes[2].String)
	assert.Equal(2, notes[3].String)
	assert.Equal(4, notes[3].Fret)
}

func TestInheritanceStartsFromStringOneAndQuarter(t *testing.T) {
	score := buildScore(t, "0 0 0 0")
	notes := score.Sections[0].Bars[0].Notes

	assert := assert.New(t)
	assert.Equal(1, notes[0].String)
	assert.True(notes[0].Duration.Equal(model.NewRational(1, 1)))
}

func TestContextResetsAtSectionBoundary(t *testing.T) {
	score := buildScore(t, "[A]\n5-0:8 1 1 1 1 1 1 1\n\n[B]\n0 0 0 0")
	note := score.Sections[1].Bars[0].Notes[0]

	assert := assert.New(t)
	assert.Equal(1, note.String)
	assert.True(note.Duration.Equal(model.NewRational(1, 1)))
}

func TestMutedNote(t *testing.T) {
	score := buildScore(t, "2-x:4 x 2-0 0")
	notes := score.Sections[0].Bars[0].Notes

	assert := assert.New(t)
	assert.True(notes[0].IsMuted)
	assert.Equal(2, notes[0].String)
	assert.True(notes[1].IsMuted)
	assert.False(notes[2].IsMuted)
}

func TestRestNote(t *testing.T) {
	score := buildScore(t, "1-0:2 r:4 r")
	notes := score.Sections[0].Bars[0].Notes

	assert := assert.New(t)
	assert.Equal(model.KindRest, notes[1].Kind)
	assert.True(notes[1].Duration.Equal(model.NewRational(1, 1)))
	// a bare rest inherits the running duration
	assert.True(notes[2].Duration.Equal(model.NewRational(1, 1)))
}

func TestVoicingSharesDurationAcrossMembers(t *testing.T) {
	score := buildScore(t, "(1-0 2-1 3-2):2 r:2")
	v := score.Sections[0].Bars[0].Notes[0]

	assert := assert.New(t)
	assert.Equal(model.KindVoicing, v.Kind)
	assert.True(v.Duration.Equal(model.NewRational(2, 1)))
	assert.Len(v.Group, 3)
	for _, m := range v.Group {
		assert.True(m.Duration.Equal(v.Duration))
	}
	assert.Equal(3, v.Group[2].String)
	assert.Equal(2, v.Group[2].Fret)
}

func TestChordSymbolsAnchorToTheNextNote(t *testing.T) {
	score := buildScore(t, "@Am 1-0:2 [Dm] 2-0:2")
	bar := score.Sections[0].Bars[0]

	assert := assert.New(t)
	assert.Len(bar.Chords, 2)
	assert.Equal("Am", bar.Chords[0].Name)
	assert.Equal(0, bar.Chords[0].Position)
	assert.Equal("Dm", bar.Chords[1].Name)
	assert.Equal(1, bar.Chords[1].Position)
	assert.Len(bar.Notes, 2)
}

func TestTupletScaledDurationDoesNotInherit(t *testing.T) {
	score := buildScore(t, "1-0:2 [ 1-1:4 1-2 1-3 ]3 1-4")
	notes := score.Sections[0].Bars[0].Notes

	assert := assert.New(t)
	third := model.NewRational(2, 3)
	assert.True(notes[1].Duration.Equal(third))
	assert.True(notes[2].Duration.Equal(third))
	assert.True(notes[3].Duration.Equal(third))
	// the note after the tuplet gets the plain quarter back
	assert.True(notes[4].Duration.Equal(model.NewRational(1, 1)))
}

func TestBracketFlagsCarryOntoBars(t *testing.T) {
	score := buildScore(t, "{ 1-0:1\n{1 1-1:1 1}\n{2 1-2:1 2} }")
	bars := score.Sections[0].Bars

	assert := assert.New(t)
	assert.True(bars[0].RepeatStart)
	assert.True(bars[1].VoltaStart)
	assert.True(bars[1].VoltaEnd)
	assert.Equal(1, bars[1].VoltaNumber)
	assert.Equal(2, bars[2].VoltaNumber)
	assert.True(bars[2].RepeatEnd)
}
