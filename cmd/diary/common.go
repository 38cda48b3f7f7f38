package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/diary"
	"github.com/aretw0/diary/pkg/core"
	"github.com/aretw0/diary/pkg/recent"
)

// openService roots the service at the working directory so that --file
// resolves the way the shell would.
func openService(opts ...diary.Option) *core.Service {
	wd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get CWD", err)
	}
	base := []diary.Option{diary.WithMustExist(true), diary.WithLogger(slog.Default())}
	svc, err := diary.New(wd, append(base, opts...)...)
	if err != nil {
		fatal("Failed to initialize diary", err)
	}
	return svc
}

func openJournal(ctx context.Context, svc *core.Service) *core.Document {
	doc, err := svc.Open(ctx, file)
	if err != nil {
		fatal(fmt.Sprintf("Failed to open %s", file), err)
	}
	touchRecent(file)
	return doc
}

func saveJournal(ctx context.Context, svc *core.Service, doc *core.Document) {
	if err := svc.Save(ctx, doc, file); err != nil {
		fatal(fmt.Sprintf("Failed to save %s", file), err)
	}
	touchRecent(file)
}

func loadRecent() (*recent.List, error) {
	path := recentFile
	if path == "" {
		var err error
		if path, err = recent.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return recent.Load(path)
}

// touchRecent records path in the recent list. Failures only warn: the
// journal itself was handled already.
func touchRecent(path string) {
	list, err := loadRecent()
	if err != nil {
		slog.Warn("recent list unavailable", "error", err)
		return
	}
	if !list.Touch(path) {
		return
	}
	if err := list.Save(); err != nil {
		slog.Warn("failed to update recent list", "path", list.Path(), "error", err)
	}
}

// entryText joins args, or reads stdin when there are none or the only
// argument is "-".
func entryText(args []string) string {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("Failed to read stdin", err)
		}
		return string(data)
	}
	return strings.Join(args, " ")
}

const displayLayout = "2006-01-02 15:04"

// indent prefixes continuation lines so multi-line entries stay readable.
func indent(text, prefix string) string {
	return strings.ReplaceAll(text, "\n", "\n"+prefix)
}
