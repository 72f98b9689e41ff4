package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kvit-s/v4apply/internal/config"
	"github.com/kvit-s/v4apply/internal/loader"
	"github.com/kvit-s/v4apply/internal/logging"
	"github.com/kvit-s/v4apply/internal/patch"
	"github.com/kvit-s/v4apply/internal/tui"
	"github.com/kvit-s/v4apply/internal/workspace"
)

func main() {
	configPath := flag.String("config", "v4apply.yaml", "path to config file")
	patchFile := flag.String("patch", "", "patch file to preview (default: stdin)")
	root := flag.String("C", "", "workspace root (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("load config: %v", err)
	}
	if *root != "" {
		cfg.Workspace.Root = *root
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		fatal("open log: %v", err)
	}
	defer logger.Close()

	text, err := readPatchText(*patchFile)
	if err != nil {
		fatal("read patch: %v", err)
	}

	docs := loader.NewFSStore(cfg.Workspace.Root)
	parsed, err := patch.Build(text, docs)
	if err != nil {
		logger.PatchFailed(err)
		fatal("%v", err)
	}
	commit, err := patch.ToCommit(parsed, docs)
	if err != nil {
		logger.PatchFailed(err)
		fatal("%v", err)
	}
	logger.PatchParsed(parsed.Len(), parsed.Fuzz())

	model, err := tui.New(commit, parsed.Fuzz(), cfg.Apply.DiffContext)
	if err != nil {
		fatal("%v", err)
	}
	// Keep stdout for the final summary; the TUI draws on the tty.
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		fatal("%v", err)
	}
	if !model.Accepted() {
		fmt.Println("aborted")
		return
	}

	lock, err := workspace.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		fatal("%v", err)
	}
	defer lock.Release()

	result, err := workspace.NewApplier(cfg.Workspace.Root).Apply(commit)
	logger.CommitApplied(len(result.Added), len(result.Updated), len(result.Deleted), err)
	if err != nil {
		fatal("apply: %v", err)
	}
	fmt.Printf("%d added, %d updated, %d deleted\n",
		len(result.Added), len(result.Updated), len(result.Deleted))
}

func readPatchText(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "v4apply-ui: "+format+"\n", args...)
	os.Exit(1)
}
