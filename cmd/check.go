package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabscribe/tabscribe/tab"
	"github.com/tabscribe/tabscribe/util"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validates tab files",
	Long:  `Parses and validates tab files, reporting the first error in each`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			panic("Need at least 1 file...")
		}
		failed := 0
		for _, path := range args {
			score, err := tab.Parse(util.ReadFileOrPanic(path))
			if err != nil {
				fmt.Printf("%v: %v\n", path, err)
				failed++
				continue
			}
			bars := 0
			for _, s := range score.Sections {
				bars += len(s.Bars)
			}
			fmt.Printf("%v: ok (%v sections, %v bars)\n", path, len(score.Sections), bars)
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}
