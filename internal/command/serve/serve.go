package serve

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bornholm/scoops/internal/command/common"
	"github.com/bornholm/scoops/internal/web"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Serve() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the ice-cream shops browser as a web page",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Value:   ":8080",
				Aliases: []string{"a"},
				EnvVars: []string{"SCOOPS_ADDRESS"},
				Usage:   "The address the http server listens on",
			},
			&cli.StringFlag{
				Name:    "base-path",
				Value:   "/",
				EnvVars: []string{"SCOOPS_BASE_PATH"},
				Usage:   "The public path of the page, when served behind a reverse proxy",
			},
		}, common.GatewayFlags()...),
		Action: func(cliCtx *cli.Context) error {
			client, err := common.NewClientFromContext(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			renderer, err := web.NewRenderer(cliCtx.String("base-path"))
			if err != nil {
				return errors.Wrap(err, "could not create renderer")
			}

			ctx, stop := signal.NotifyContext(cliCtx.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			address := cliCtx.String("address")

			if err := web.ListenAndServe(ctx, address, web.NewHandler(client, renderer)); err != nil {
				return errors.Wrapf(err, "could not serve on '%s'", address)
			}

			slog.InfoContext(ctx, "http server stopped")

			return nil
		},
	}
}
