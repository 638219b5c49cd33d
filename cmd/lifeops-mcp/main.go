package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	lmcp "github.com/lifeops/lifeops/internal/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("LIFEOPS_URL"), "lifeops server URL (e.g. https://lifeops.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("LIFEOPS_API_KEY"), "API key sent with requests (optional)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("lifeops-mcp", Version)
		return
	}

	// stdout carries the MCP protocol; logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: lifeops-mcp -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	client := lmcp.NewHTTPClient(*serverURL, *apiKey)
	s := lmcp.New(client, Version, log)

	log.Info("lifeops-mcp starting", "version", Version, "server", *serverURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
