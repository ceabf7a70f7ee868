package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabscribe",
	Short: "Parse tab notation into structured scores",
	Long:  `Parses tab notation files into validated score graphs and exports them as JSON or midi.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
