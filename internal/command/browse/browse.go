package browse

import (
	"io"
	"log/slog"
	"os"

	"github.com/bornholm/scoops/internal/command"
	"github.com/bornholm/scoops/internal/command/common"
	"github.com/bornholm/scoops/internal/logx"
	"github.com/bornholm/scoops/internal/tui"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Browse() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the ice-cream shops of a city in an interactive terminal interface",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "city",
				Value:   view.DefaultCity,
				Aliases: []string{"c"},
				EnvVars: []string{"SCOOPS_CITY"},
				Usage:   "The city searched at startup",
			},
			&cli.StringFlag{
				Name:      "log-file",
				Value:     "",
				EnvVars:   []string{"SCOOPS_LOG_FILE"},
				Usage:     "Write logs to the given file instead of discarding them",
				TakesFile: true,
			},
		}, common.GatewayFlags()...),
		Action: func(cliCtx *cli.Context) error {
			client, err := common.NewClientFromContext(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			// The terminal is owned by the interface while it runs
			var logOutput io.Writer = io.Discard

			if logFile := cliCtx.String("log-file"); logFile != "" {
				file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return errors.Wrapf(err, "could not open log file '%s'", logFile)
				}

				defer file.Close()

				logOutput = file
			}

			level, err := command.ParseLogLevel(cliCtx.String("log-level"))
			if err != nil {
				return errors.WithStack(err)
			}

			logger := slog.New(logx.ContextHandler{
				Handler: slog.NewTextHandler(logOutput, &slog.HandlerOptions{
					Level: level,
				}),
			})

			previous := slog.Default()
			defer slog.SetDefault(previous)

			slog.SetDefault(logger)

			if err := tui.Run(cliCtx.Context, client, cliCtx.String("city"), view.WithLogger(logger)); err != nil {
				return errors.Wrap(err, "could not run terminal interface")
			}

			return nil
		},
	}
}
