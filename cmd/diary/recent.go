package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently used journals, newest first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		list, err := loadRecent()
		if err != nil {
			fatal("Failed to load recent list", err)
		}
		for _, path := range list.Newest() {
			fmt.Println(path)
		}
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
