package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/meltforce/liftlog/internal/backup"
	"github.com/meltforce/liftlog/internal/store"
	"github.com/meltforce/liftlog/internal/workout"
)

func main() {
	storeDir := flag.String("store", "", "path to the store directory (required)")
	out := flag.String("out", ".", "directory to write the export into")
	importFile := flag.String("import", "", "backup file to import (replaces the stored state)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *storeDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-backup -store /path/to/store [-out dir | -import backup.json]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	st, err := store.Open(*storeDir)
	if err != nil {
		log.Error("failed to open store", "dir", *storeDir, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	manager, err := workout.New(st, log)
	if err != nil {
		log.Error("failed to load state", "error", err)
		os.Exit(1)
	}

	if *importFile != "" {
		data, err := os.ReadFile(*importFile)
		if err != nil {
			log.Error("failed to read backup", "file", *importFile, "error", err)
			os.Exit(1)
		}
		if err := manager.ImportData(data); err != nil {
			log.Error("import rejected", "file", *importFile, "error", err)
			os.Exit(1)
		}
		state := manager.State()
		log.Info("import complete",
			"categories", len(state.Categories),
			"exercises", len(state.Exercises),
			"sessions", len(state.Sessions),
		)
		return
	}

	data, _, err := manager.ExportData()
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	path := filepath.Join(*out, backup.Filename(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("failed to write export", "path", path, "error", err)
		os.Exit(1)
	}
	log.Info("export written", "path", path, "bytes", len(data))
}
