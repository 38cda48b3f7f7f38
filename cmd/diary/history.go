package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aretw0/diary"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <index>",
	Short: "Print every version of an entry, oldest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		svc := openService(diary.WithReadOnly(true))
		doc := openJournal(context.Background(), svc)

		entry, err := doc.Entry(index)
		if err != nil {
			fatal("Failed to read entry", err)
		}
		for v, c := range entry.History() {
			fmt.Printf("v%d  %s\n", v+1, c.Time().Format(displayLayout))
			fmt.Printf("    %s\n", indent(c.Text(), "    "))
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
