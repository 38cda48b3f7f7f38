package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Append a new entry",
	Long:  `Append a new entry to the journal. The text is taken from the arguments, or from stdin when none are given.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		svc := openService()
		doc := openJournal(ctx, svc)

		session := svc.NewSession(doc)
		buf, err := session.Compose()
		if err != nil {
			fatal("Failed to start entry", err)
		}
		buf.InsertString(entryText(args))

		index, err := session.Commit()
		if err != nil {
			fatal("Failed to commit entry", err)
		}
		saveJournal(ctx, svc, doc)
		fmt.Printf("Entry #%d added to %s\n", index, file)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
