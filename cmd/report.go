package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabscribe/tabscribe/db"
	"github.com/tabscribe/tabscribe/util"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [files...]",
	Short: "Reports cataloged metadata",
	Long:  `Fetches and prints catalog rows for up to 10 filenames`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 filename...")
		}
		if len(args) > 10 {
			panic("Can only report on 10 filenames at a time...")
		}
		report(args)
	},
}

func report(filenames []string) {
	rows, err := db.GetScoreMetadatas(filenames)
	if err != nil {
		panic("Could not fetch catalog rows: " + err.Error())
	}

	for _, filename := range util.SortedKeys(rows) {
		row := rows[filename]
		fmt.Printf("%v: %q %v %v, %v bars\n",
			filename, row.Title, row.Tuning, row.Beat, row.BarCount)
	}
	fmt.Printf("Found %v of %v filenames.\n", len(rows), len(filenames))
}
