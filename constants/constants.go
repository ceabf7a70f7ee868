package constants

import "os"

func GetOutputDir() string {
	path := os.Getenv("TABSCRIBE_OUT")
	if path != "" {
		return path
	}
	return "."
}

func GetCatalogTable() string {
	table := os.Getenv("TABSCRIBE_CATALOG_TABLE")
	if table != "" {
		return table
	}
	return "tabscribe-catalog"
}

// Defaults used when the source declares no metadata.
const (
	DefaultTuning      = "guitar"
	DefaultBeat        = "4/4"
	DefaultDuration    = "4" // quarter note
	DefaultBarsPerLine = 4
)

// TicksPerQuarter is the SMF resolution for midi export. 960 divides
// evenly for dots and for 3- and 5-tuplets.
const TicksPerQuarter = 960

const TabFileExt = ".tab"
