package main

import (
	"context"
	"fmt"

	"github.com/aretw0/diary"
	"github.com/spf13/cobra"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the journal, newest entry first",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(diary.WithReadOnly(true))
		doc := openJournal(context.Background(), svc)

		if doc.Name() != "" {
			fmt.Printf("# %s\n\n", doc.Name())
		}
		for n, ie := range doc.NewestFirst() {
			if showLimit > 0 && n >= showLimit {
				break
			}
			current := ie.Entry.Current()
			edited := ""
			if ie.Entry.Len() > 1 {
				edited = fmt.Sprintf(" (edited %s)", current.Time().Format(displayLayout))
			}
			fmt.Printf("#%d  %s%s\n", ie.Index, ie.Entry.Created().Format(displayLayout), edited)
			fmt.Printf("    %s\n\n", indent(current.Text(), "    "))
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show at most n entries")
}
