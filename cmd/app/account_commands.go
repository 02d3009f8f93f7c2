package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/cmd/app/commands"
	"github.com/allisson/accounts/internal/app"
)

func getAccountCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "delete-account",
			Usage: "Delete an account by ID",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Account ID (UUID)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					accountUseCase, err := container.AccountUseCase()
					if err != nil {
						return err
					}

					return commands.RunDeleteAccount(
						ctx,
						accountUseCase,
						container.Logger(),
						cmd.Root().Writer,
						cmd.String("id"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
