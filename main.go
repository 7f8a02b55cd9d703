package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fogcast/fogcast-mcp/internal/config"
	"github.com/fogcast/fogcast-mcp/internal/fogcast"
	"github.com/fogcast/fogcast-mcp/internal/httpclient"
	"github.com/fogcast/fogcast-mcp/internal/server"
	"github.com/fogcast/fogcast-mcp/internal/tools"
)

func main() {
	cfg := config.Load()
	log := config.GetLogger()
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	transport := httpclient.New(cfg.BaseURL, cfg.Timeout)
	gateway := fogcast.NewClient(transport)
	toolset := tools.New(gateway)
	srv := server.New(cfg.ServerName, cfg.ServerVersion, toolset)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infow("starting MCP server",
		"name", cfg.ServerName,
		"version", cfg.ServerVersion,
		"fogcast_base_url", cfg.BaseURL,
	)

	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Fatalw("server terminated", "error", err)
	}
}
