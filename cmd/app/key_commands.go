package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/cmd/app/commands"
	"github.com/allisson/accounts/internal/app"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-session-secret",
			Usage: "Generate a new session signing secret, optionally encrypted with KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI; the scheme picks the provider (base64key, gcpkms, awskms, azurekeyvault, hashivault)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					return commands.RunCreateSessionSecret(
						ctx,
						container.KMSService(),
						container.Logger(),
						cmd.Root().Writer,
						cmd.String("kms-key-uri"),
					)
				})
			},
		},
	}
}
