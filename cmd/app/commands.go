package main

import (
	"context"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
)

func getCommands(version string) []*cli.Command {
	return slices.Concat(
		getSystemCommands(version),
		getKeyCommands(),
		getAccountCommands(),
	)
}

// withContainer loads the configuration from the environment and runs fn with a
// container that is shut down afterwards.
func withContainer(ctx context.Context, fn func(*app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()
	return fn(container)
}
