package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var reviseAppend bool

var reviseCmd = &cobra.Command{
	Use:   "revise <index> [text...]",
	Short: "Record a new version of an entry",
	Long: `Record a new version of the entry at <index>. Earlier versions are kept.
By default the text replaces the current one; --append adds it to the end instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		ctx := context.Background()
		svc := openService()
		doc := openJournal(ctx, svc)

		session := svc.NewSession(doc)
		buf, err := session.Revise(index)
		if err != nil {
			fatal("Failed to revise entry", err)
		}
		if reviseAppend {
			buf.MoveEnd()
		} else {
			buf.Clear()
		}
		buf.InsertString(entryText(args[1:]))

		if _, err := session.Commit(); err != nil {
			fatal("Failed to commit revision", err)
		}
		saveJournal(ctx, svc, doc)

		entry, _ := doc.Entry(index)
		fmt.Printf("Entry #%d now has %d versions\n", index, entry.Len())
	},
}

func init() {
	rootCmd.AddCommand(reviseCmd)
	reviseCmd.Flags().BoolVarP(&reviseAppend, "append", "a", false, "Append to the current text instead of replacing it")
}
