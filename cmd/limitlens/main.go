package main

import (
	"context"

	"github.com/limitlens/limitlens/internal/cmd"
)

// Version information set via ldflags during build
// Example: go build -ldflags="-X main.version=1.0.0 -X main.commit=abc123 -X main.buildDate=2025-10-28"
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)

	ctx := cmd.NewRunContext(context.Background())
	if err := cmd.Execute(ctx); err != nil {
		cmd.ExitWithError(ctx, err)
	}
}
