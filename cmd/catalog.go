package cmd

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabscribe/tabscribe/constants"
	"github.com/tabscribe/tabscribe/db"
	"github.com/tabscribe/tabscribe/tab"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [dir]",
	Short: "Catalogs tab files into dynamodb",
	Long:  `Parses every tab file under a directory and writes its metadata to the catalog table`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need exactly 1 directory to catalog...")
		}
		catalog(args[0])
	},
}

func catalog(dir string) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, constants.TabFileExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		panic(err)
	}

	for _, path := range paths {
		score, err := tab.ParseFile(path)
		if err != nil {
			fmt.Printf("Error processing %v: %v\n", path, err)
			continue
		}
		barCount := 0
		for _, section := range score.Sections {
			barCount += len(section.Bars)
		}
		meta := db.ScoreMetadata{
			Title:    score.Metadata.Title,
			Tuning:   score.Metadata.Tuning,
			Beat:     score.Metadata.Beat,
			BarCount: barCount,
		}
		if err := db.PutScoreMetadata(filepath.Base(path), meta); err != nil {
			fmt.Printf("Error cataloging %v: %v\n", path, err)
			continue
		}
		fmt.Printf("Cataloged %v\n", path)
	}
	fmt.Printf("Done. Processed %v files.\n", len(paths))
}
