package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var newForce bool

var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty journal",
	Long:  `Create an empty journal at --file. The name defaults to the file name without its extension.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if len(args) == 1 {
			name = args[0]
		}

		if _, err := os.Stat(file); err == nil && !newForce {
			fatal("Refusing to overwrite", fmt.Errorf("%s already exists (use --force)", file))
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			fatal("Failed to stat journal", err)
		}

		svc := openService()
		saveJournal(context.Background(), svc, svc.Create(name))
		fmt.Printf("Journal '%s' created at %s\n", name, file)
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().BoolVar(&newForce, "force", false, "Overwrite an existing journal")
}
