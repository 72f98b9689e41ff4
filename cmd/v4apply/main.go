package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kvit-s/v4apply/internal/config"
	"github.com/kvit-s/v4apply/internal/loader"
	"github.com/kvit-s/v4apply/internal/logging"
	"github.com/kvit-s/v4apply/internal/patch"
	"github.com/kvit-s/v4apply/internal/ui"
	"github.com/kvit-s/v4apply/internal/workspace"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
)

func main() {
	configPath := flag.String("config", "v4apply.yaml", "path to config file")
	patchFile := flag.String("patch", "", "patch file to apply (default: stdin)")
	root := flag.String("C", "", "workspace root (overrides config)")
	dryRun := flag.Bool("dry-run", false, "preview only, write nothing")
	yes := flag.Bool("yes", false, "apply without confirmation")
	quiet := flag.Bool("q", false, "suppress preview output")
	logFile := flag.String("log", "", "log file path (overrides config, empty disables)")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("v4apply %s-%s\n", version, commitHash)
		return
	}

	writer := ui.NewWriter()
	writer.SetQuiet(*quiet)

	cfg, err := config.Load(*configPath)
	if err != nil {
		writer.Error("load config: %v", err)
		os.Exit(1)
	}
	if *root != "" {
		cfg.Workspace.Root = *root
	}
	if *dryRun {
		cfg.Apply.DryRun = true
	}
	logPath := cfg.Log.Path
	if *logFile != "" {
		logPath = *logFile
	}

	logger, err := logging.New(logPath, cfg.Log.Development)
	if err != nil {
		writer.Error("open log: %v", err)
		os.Exit(1)
	}
	defer logger.Close()

	text, err := readPatchText(*patchFile)
	if err != nil {
		writer.Error("read patch: %v", err)
		os.Exit(1)
	}

	docs := loader.NewFSStore(cfg.Workspace.Root)
	parsed, err := patch.Build(text, docs)
	if err != nil {
		logger.PatchFailed(err)
		writer.Error("%v", err)
		os.Exit(1)
	}
	commit, err := patch.ToCommit(parsed, docs)
	if err != nil {
		logger.PatchFailed(err)
		writer.Error("%v", err)
		os.Exit(1)
	}
	logger.PatchParsed(parsed.Len(), parsed.Fuzz())

	writer.Preview(commit, cfg.Apply.DiffContext)
	writer.FuzzNote(parsed.Fuzz())

	if cfg.Apply.DryRun {
		writer.Info("dry run, nothing written")
		return
	}
	if !*yes && (cfg.Apply.Confirm || !*quiet) {
		if !ui.Confirm(fmt.Sprintf("Apply %d file change(s)?", len(commit))) {
			writer.Info("aborted")
			return
		}
	}

	lock, err := workspace.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		writer.Error("%v", err)
		os.Exit(2)
	}
	defer lock.Release()

	result, err := workspace.NewApplier(cfg.Workspace.Root).Apply(commit)
	logger.CommitApplied(len(result.Added), len(result.Updated), len(result.Deleted), err)
	if err != nil {
		writer.Error("apply: %v", err)
		os.Exit(2)
	}
	writer.Summary(len(result.Added), len(result.Updated), len(result.Deleted))
}

func readPatchText(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
