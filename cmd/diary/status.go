package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/aretw0/diary"
	"github.com/aretw0/diary/pkg/adapters/fs"
	"github.com/aretw0/diary/pkg/core"
)

var statusDiagram bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the journal store below the working directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		wd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}
		repo, err := diary.Init(wd, diary.WithMustExist(true), diary.WithLogger(slog.Default()))
		if err != nil {
			fatal("Failed to initialize diary", err)
		}
		svc := core.NewService(repo, slog.Default())

		summaries, err := svc.List(context.Background(), "")
		if err != nil {
			fatal("Failed to list journals", err)
		}

		printState("service", svc)
		intro, ok := repo.(introspection.Introspectable)
		if !ok {
			return
		}
		printState("repository", intro)

		state, ok := intro.State().(fs.RepositoryState)
		if !statusDiagram || !ok {
			return
		}
		config := introspection.DefaultDiagramConfig()
		config.SecondaryID = "store"
		config.SecondaryLabel = "Journal Store"
		fmt.Println(introspection.TreeDiagram(buildStoreTree(state, summaries), config))
	},
}

func printState(label string, intro introspection.Introspectable) {
	kind := label
	if comp, ok := intro.(introspection.Component); ok {
		kind = comp.ComponentType()
	}
	data, err := json.MarshalIndent(intro.State(), "", "  ")
	if err != nil {
		fatal("Failed to encode state", err)
	}
	fmt.Printf("%s (%s)\n%s\n", label, kind, data)
}

type storeNode struct {
	Name     string
	Status   string
	Metadata map[string]string
	Children []storeNode
}

func buildStoreTree(state fs.RepositoryState, summaries []core.Summary) storeNode {
	watcherStatus := "suspended"
	if state.Watchers > 0 {
		watcherStatus = "running"
	}

	journals := make([]storeNode, 0, len(summaries))
	for _, s := range summaries {
		journals = append(journals, storeNode{
			Name:   s.Path,
			Status: "finished",
			Metadata: map[string]string{
				"type":    "container",
				"entries": fmt.Sprintf("%d", s.Entries),
			},
		})
	}

	return storeNode{
		Name:   "Store",
		Status: "running",
		Metadata: map[string]string{
			"type": "container",
			"path": state.Path,
		},
		Children: []storeNode{
			{
				Name:   "Watcher",
				Status: watcherStatus,
				Metadata: map[string]string{
					"type": "goroutine",
				},
			},
			{
				Name:   "Cache",
				Status: "running",
				Metadata: map[string]string{
					"type":    "container",
					"entries": fmt.Sprintf("%d", state.CacheSize),
				},
				Children: journals,
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "Also print a Mermaid diagram of the store")
}
