package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/layout"
	"github.com/tabscribe/tabscribe/midi"
	"github.com/tabscribe/tabscribe/model"
	"github.com/tabscribe/tabscribe/tab"
	"github.com/tabscribe/tabscribe/util"
)

var (
	convertToMidi      bool
	convertBarsPerLine int
)

func init() {
	convertCmd.Flags().BoolVar(&convertToMidi, "midi", false, "write a .mid file instead of .json")
	convertCmd.Flags().IntVar(&convertBarsPerLine, "bars-per-line", 0, "max bars per layout column (default: score metadata)")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Converts tab files",
	Long:  `Converts tab files to .json score+layout documents or .mid files`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 file...")
		}
		for _, path := range args {
			if err := convertFile(path); err != nil {
				fmt.Printf("Error processing %v: %v\n", path, err)
				continue
			}
		}
	},
}

func convertFile(path string) error {
	score, err := tab.ParseFile(path)
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outDir := constants.GetOutputDir()

	if convertToMidi {
		out := filepath.Join(outDir, base+".mid")
		if err := midi.WriteFile(score, out); err != nil {
			return err
		}
		fmt.Printf("Generated %v\n", out)
		return nil
	}

	arrangement := layout.Arrange(score, layoutConfig(score))
	doc := model.ScoreResponse{Score: score, Layout: arrangement}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out := filepath.Join(outDir, base+".json")
	if err := os.WriteFile(out, data, 0644); err != nil {
		return err
	}
	fmt.Printf("Generated %v\n", out)
	return nil
}

// layoutConfig prefers the explicit flag, falling back to the score's
// own bars_per_line declaration.
func layoutConfig(score *model.Score) layout.Config {
	bars := score.Metadata.BarsPerLine
	if convertBarsPerLine > 0 {
		bars = convertBarsPerLine
	}
	return layout.Config{MaxBarsPerLine: util.Min(bars, 16)}
}
