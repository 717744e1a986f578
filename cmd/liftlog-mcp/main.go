package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/liftlog/internal/mcp"
	"github.com/meltforce/liftlog/internal/store"
	"github.com/meltforce/liftlog/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	remoteURL := flag.String("url", "", "base URL of a remote LiftLog server (e.g. http://liftlog:80)")
	storeDir := flag.String("store", "", "path to a local store directory (mutually exclusive with -url)")
	flag.Parse()

	// MCP speaks JSON-RPC on stdout; logs must go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*remoteURL == "") == (*storeDir == "") {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-mcp -url http://liftlog | liftlog-mcp -store /path/to/store\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var ds mcp.DataSource
	if *remoteURL != "" {
		ds = mcp.NewHTTPClient(*remoteURL)
		log.Info("remote mode", "url", *remoteURL)
	} else {
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
		ds = mcp.NewLocal(manager, nil)
		log.Info("local mode", "store", *storeDir)
	}

	s := mcp.New(ds, Version, log)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
