package command

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bornholm/scoops/internal/logx"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const defaultEnvFile = ".env"

func Main(name string, version string, usage string, commands ...*cli.Command) {
	// Load the environment file before flags are resolved so that its
	// values can feed the EnvVars of every flag
	if err := LoadEnvFile(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Version:  version,
		Before: func(ctx *cli.Context) error {
			workdir := ctx.String("workdir")
			// Switch to new working directory if defined
			if workdir != "" {
				if err := os.Chdir(workdir); err != nil {
					return errors.Wrap(err, "could not change working directory")
				}
			}

			level, err := ParseLogLevel(ctx.String("log-level"))
			if err != nil {
				return errors.WithStack(err)
			}

			logger := slog.New(logx.ContextHandler{
				Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: level,
				}),
			})
			slog.SetDefault(logger)

			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "workdir",
				Value:   "",
				EnvVars: []string{"SCOOPS_WORKDIR"},
				Usage:   "The working directory",
			},
			&cli.BoolFlag{
				Name:    "debug",
				EnvVars: []string{"SCOOPS_DEBUG"},
				Usage:   "Enable debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"SCOOPS_LOG_LEVEL"},
				Usage:   "Set logging level (debug, info, warn or error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:      "env-file",
				Value:     defaultEnvFile,
				EnvVars:   []string{"SCOOPS_ENV_FILE"},
				Usage:     "Environment file loaded before flags are resolved, ignored if missing",
				TakesFile: true,
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		debug := ctx.Bool("debug")

		if !debug {
			slog.ErrorContext(ctx.Context, err.Error())
		} else {
			slog.ErrorContext(ctx.Context, fmt.Sprintf("%+v", err))
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// ParseLogLevel maps a level name to its slog level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, errors.Errorf("invalid log level '%s', expected debug, info, warn or error", level)
	}
}

// EnvFile returns the environment file designated by the --env-file
// flag of the given arguments, SCOOPS_ENV_FILE or the default one.
func EnvFile(args []string) string {
	for i := 1; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			break
		}

		for _, prefix := range []string{"--env-file", "-env-file"} {
			if arg == prefix && i+1 < len(args) {
				return args[i+1]
			}

			if value, found := strings.CutPrefix(arg, prefix+"="); found {
				return value
			}
		}
	}

	if envFile := os.Getenv("SCOOPS_ENV_FILE"); envFile != "" {
		return envFile
	}

	return defaultEnvFile
}

// LoadEnvFile loads the environment file designated by the given
// arguments. A missing file is ignored.
func LoadEnvFile(args []string) error {
	envFile := EnvFile(args)

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "could not load environment file '%s'", envFile)
	}

	return nil
}
