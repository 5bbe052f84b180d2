// Command mcp-template runs the template server on stdio: it loads
// configuration, registers the demo operations, and serves until the input
// stream closes. Any startup failure is fatal with a non-zero exit.
package main

import (
	"os"

	"github.com/d-gangz/mcp-template/config"
	"github.com/d-gangz/mcp-template/handlers"
	"github.com/d-gangz/mcp-template/logx"
	"github.com/d-gangz/mcp-template/server"
)

func main() {
	logger := logx.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("startup failed: %v", err)
		os.Exit(1)
	}
	logger.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logger.Info("starting %s", cfg.ServerName)

	registry := server.NewRegistry(logger)

	addNumbers := handlers.AddNumbers()
	if cfg.ToolRPS > 0 {
		addNumbers.Handler = handlers.RateLimited(addNumbers.Handler, cfg.ToolRPS, cfg.ToolBurst)
	}

	descriptors := []server.Descriptor{
		addNumbers,
		handlers.CreateGreeting(),
		handlers.CodeReview(),
		handlers.UsageGuide(cfg.ResourceFile),
		handlers.ListOperations(registry),
	}
	for _, d := range descriptors {
		if err := registry.Register(d); err != nil {
			logger.Error("startup failed: %v", err)
			os.Exit(1)
		}
	}

	if err := server.ServeStdio(registry, logger); err != nil {
		logger.Error("server exited with error: %v", err)
		os.Exit(1)
	}
}
