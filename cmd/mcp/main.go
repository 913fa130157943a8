// Command mcp serves the health KPI tools over the Model Context Protocol on
// stdio.
package main

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/blaisecz/health-trends/internal/app"
	"github.com/blaisecz/health-trends/internal/config"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/mcp"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	// stdout carries the protocol stream.
	output := cfg.LogFile
	if output == "" || output == "stdout" {
		output = "stderr"
	}
	log := logger.GetLogger()
	if err := log.Configure(cfg.LogLevel, output); err != nil {
		log.WithError(err).Fatal("failed to configure logger")
	}

	pipeline, err := app.NewPipeline(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to build pipeline")
	}

	s := mcp.New(pipeline.Dashboard, pipeline.Analytics, version)

	log.WithFields(logger.Fields{"provider": cfg.ProviderMode}).Info("serving MCP on stdio")
	if err := server.ServeStdio(s); err != nil {
		log.WithError(err).Fatal("mcp server stopped")
	}
}
