package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tabscribe/tabscribe/model"
)

func scoreWithBars(counts ...int) *model.Score {
	score := &model.Score{}
	for _, n := range counts {
		score.Sections = append(score.Sections, model.Section{Bars: make([]model.Bar, n)})
	}
	return score
}

func TestSixteenBarsAtFourPerLineMakeFourColumns(t *testing.T) {
	res := Arrange(scoreWithBars(16), Config{MaxBarsPerLine: 4})

	assert := assert.New(t)
	assert.Len(res.Sections, 1)
	sl := res.Sections[0]
	assert.Len(sl.Columns, 4)
	for i, col := range sl.Columns {
		assert.Equal(i*4, col.Start)
		assert.Equal(i*4+4, col.End)
	}
}

func TestLastColumnHoldsTheRemainder(t *testing.T) {
	res := Arrange(scoreWithBars(10), Config{MaxBarsPerLine: 4})
	sl := res.Sections[0]

	assert := assert.New(t)
	assert.Len(sl.Columns, 3)
	assert.Equal(model.Column{Start: 8, End: 10}, sl.Columns[2])
}

func TestBarColumnMapsEveryBar(t *testing.T) {
	res := Arrange(scoreWithBars(6), Config{MaxBarsPerLine: 4})
	sl := res.Sections[0]

	assert.Equal(t, []int{0, 0, 0, 0, 1, 1}, sl.BarColumn)
}

func TestSectionsArePackedIndependently(t *testing.T) {
	res := Arrange(scoreWithBars(5, 3), Config{MaxBarsPerLine: 4})

	assert := assert.New(t)
	assert.Len(res.Sections[0].Columns, 2)
	assert.Len(res.Sections[1].Columns, 1)
	assert.Equal(model.Column{Start: 0, End: 3}, res.Sections[1].Columns[0])
}

func TestEmptySectionYieldsNoColumns(t *testing.T) {
	res := Arrange(scoreWithBars(0), Config{MaxBarsPerLine: 4})
	sl := res.Sections[0]

	assert := assert.New(t)
	assert.Empty(sl.Columns)
	assert.Empty(sl.Lines)
	assert.Empty(sl.Pages)
}

func TestZeroConfigFallsBackToDefaults(t *testing.T) {
	res := Arrange(scoreWithBars(8), Config{})
	sl := res.Sections[0]

	assert := assert.New(t)
	assert.Len(sl.Columns, 2)
	assert.Len(sl.Lines, 2) // one column per line by default
	assert.Len(sl.Pages, 1)
}

func TestColumnsGroupIntoLinesAndPages(t *testing.T) {
	cfg := Config{MaxBarsPerLine: 1, MaxColumnsPerLine: 2, MaxLinesPerPage: 2}
	res := Arrange(scoreWithBars(9), cfg)
	sl := res.Sections[0]

	assert := assert.New(t)
	assert.Len(sl.Columns, 9)
	assert.Len(sl.Lines, 5)
	assert.Equal(model.Line{Start: 4, End: 5}, sl.Lines[4])
	assert.Len(sl.Pages, 3)
	assert.Equal([]int{0, 1}, sl.Pages[0])
	assert.Equal([]int{4}, sl.Pages[2])
}
