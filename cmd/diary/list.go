package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "List journals below the working directory",
	Long:  `List journals whose path matches a glob such as "2024/**/*.diary". Defaults to every .diary file.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := ""
		if len(args) == 1 {
			pattern = args[0]
		}

		svc := openService()
		summaries, err := svc.List(context.Background(), pattern)
		if err != nil {
			fatal("Failed to list journals", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(summaries); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, s := range summaries {
			modified := "-"
			if !s.Modified.IsZero() {
				modified = s.Modified.Format(displayLayout)
			}
			fmt.Printf("%s\t%s\t%d entries\t%s\n", s.Path, s.Name, s.Entries, modified)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
