package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watches a tab file and reconverts on change",
	Long:  `Watches a tab file and reruns the conversion whenever it changes`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need exactly 1 file to watch...")
		}
		watch(args[0])
	},
}

func watch(path string) {
	debounced := debounce.New(300 * time.Millisecond)
	convert := func() {
		if err := convertFile(path); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("converted", path)
	}
	convert()

	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	for {
		time.Sleep(500 * time.Millisecond)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.ModTime().After(lastMod) {
			lastMod = info.ModTime()
			debounced(convert)
		}
	}
}
