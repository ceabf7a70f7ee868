package layout

import (
	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/model"
	"github.com/tabscribe/tabscribe/util"
)

// Config is supplied by the caller, never read from the source text.
// Non-positive values fall back to the defaults.
type Config struct {
	MaxBarsPerLine    int
	MaxColumnsPerLine int
	MaxLinesPerPage   int
}

func (c Config) withDefaults() Config {
	if c.MaxBarsPerLine < 1 {
		c.MaxBarsPerLine = constants.DefaultBarsPerLine
	}
	if c.MaxColumnsPerLine < 1 {
		c.MaxColumnsPerLine = 1
	}
	if c.MaxLinesPerPage < 1 {
		c.MaxLinesPerPage = 10
	}
	return c
}

// Arrange packs every section's bars into display columns, columns into
// lines and lines into pages, purely by count and in source order. A
// section with n bars always yields ceil(n/MaxBarsPerLine) columns;
// musical content never influences the packing.
func Arrange(score *model.Score, cfg Config) model.Assignment {
	cfg = cfg.withDefaults()

	var res model.Assignment
	for _, section := range score.Sections {
		res.Sections = append(res.Sections, arrangeSection(len(section.Bars), cfg))
	}
	return res
}

func arrangeSection(barCount int, cfg Config) model.SectionLayout {
	sl := model.SectionLayout{
		Columns:   make([]model.Column, 0, util.CeilDiv(barCount, cfg.MaxBarsPerLine)),
		BarColumn: make([]int, barCount),
	}

	for start := 0; start < barCount; start += cfg.MaxBarsPerLine {
		end := util.Min(start+cfg.MaxBarsPerLine, barCount)
		col := len(sl.Columns)
		sl.Columns = append(sl.Columns, model.Column{Start: start, End: end})
		for bar := start; bar < end; bar++ {
			sl.BarColumn[bar] = col
		}
	}

	for start := 0; start < len(sl.Columns); start += cfg.MaxColumnsPerLine {
		end := util.Min(start+cfg.MaxColumnsPerLine, len(sl.Columns))
		sl.Lines = append(sl.Lines, model.Line{Start: start, End: end})
	}

	for start := 0; start < len(sl.Lines); start += cfg.MaxLinesPerPage {
		end := util.Min(start+cfg.MaxLinesPerPage, len(sl.Lines))
		page := make([]int, 0, end-start)
		for line := start; line < end; line++ {
			page = append(page, line)
		}
		sl.Pages = append(sl.Pages, page)
	}
	return sl
}
