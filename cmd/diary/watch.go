package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/diary"
	diarylifecycle "github.com/aretw0/diary/pkg/adapters/lifecycle"
	"github.com/aretw0/diary/pkg/core"
	"github.com/spf13/cobra"
)

var watchTypes []string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Report changes to the journal until interrupted",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := openService(diary.WithReadOnly(true), diary.WithWatcherErrorHandler(func(err error) {
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}))

		events, err := svc.Watch(ctx, file)
		if err != nil {
			fatal("Failed to watch journal", err)
		}

		var types []core.EventType
		for _, t := range watchTypes {
			types = append(types, core.EventType(t))
		}
		source := diarylifecycle.NewSource(events, types...)
		if err := source.Start(ctx); err != nil {
			fatal("Failed to start event source", err)
		}

		fmt.Printf("Watching %s (Ctrl+C to stop)\n", file)
		for e := range source.Events() {
			fmt.Println(e.String())
			ce, ok := e.(core.Event)
			if !ok || ce.Type == core.EventDelete {
				continue
			}
			if doc, err := svc.Open(ctx, file); err == nil {
				fmt.Printf("  %d entries\n", doc.Len())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringSliceVar(&watchTypes, "type", nil, "Only report these event types (CREATE, MODIFY, DELETE)")
}
