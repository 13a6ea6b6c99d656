package search

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bornholm/scoops/internal/command/common"
	"github.com/bornholm/scoops/internal/report"
	"github.com/bornholm/scoops/internal/tui"
	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/gobwas/glob"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.yaml.in/yaml/v3"
)

const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
)

func Search() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the ice-cream shops of a city and print them",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "city",
				Value:   view.DefaultCity,
				Aliases: []string{"c"},
				EnvVars: []string{"SCOOPS_CITY"},
				Usage:   "The searched city",
			},
			&cli.StringFlag{
				Name:    "expand",
				Value:   "",
				Aliases: []string{"e"},
				Usage:   "Identifier of the shop whose reviews are shown",
			},
			&cli.StringFlag{
				Name:    "name",
				Value:   "",
				Aliases: []string{"n"},
				Usage:   "Only keep shops whose name matches the given glob pattern (case insensitive)",
			},
			&cli.StringFlag{
				Name:    "format",
				Value:   FormatText,
				Aliases: []string{"f"},
				EnvVars: []string{"SCOOPS_FORMAT"},
				Usage:   "Output format (text, markdown or yaml)",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"SCOOPS_OUTPUT"},
				Usage:     "Output file, default to stdout (or to the slug of the city for markdown)",
				TakesFile: true,
			},
		}, common.GatewayFlags()...),
		Action: func(cliCtx *cli.Context) error {
			format := cliCtx.String("format")
			if format != FormatText && format != FormatMarkdown && format != FormatYAML {
				return errors.Errorf("unknown format '%s'", format)
			}

			client, err := common.NewClientFromContext(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx := cliCtx.Context
			controller := view.NewController(client)

			// Failures are logged by the controller, the resulting state is
			// rendered anyway
			_ = controller.Search(ctx, cliCtx.String("city"))

			if expand := cliCtx.String("expand"); expand != "" {
				_ = controller.ToggleExpand(ctx, expand)
			}

			state, err := FilterShops(controller.Snapshot(), cliCtx.String("name"))
			if err != nil {
				return errors.WithStack(err)
			}

			data, err := Format(state, format)
			if err != nil {
				return errors.Wrapf(err, "could not format result")
			}

			output := cliCtx.String("output")
			if output == "" && format == FormatMarkdown {
				output = slug.Make(state.City) + ".md"
			}

			if output == "" {
				if _, err := io.Copy(cliCtx.App.Writer, bytes.NewReader(data)); err != nil {
					return errors.WithStack(err)
				}

				return nil
			}

			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrapf(err, "failed to write result")
			}

			slog.InfoContext(ctx, "result written", slog.String("output", output))

			return nil
		},
	}
}

// FilterShops only keeps the shops whose name matches the given glob
// pattern. An empty pattern keeps every shop.
func FilterShops(state view.State, pattern string) (view.State, error) {
	if pattern == "" {
		return state, nil
	}

	matcher, err := glob.Compile(strings.ToLower(pattern))
	if err != nil {
		return state, errors.Wrapf(err, "invalid name pattern '%s'", pattern)
	}

	filtered := make([]shop.Shop, 0, len(state.Shops))
	for _, s := range state.Shops {
		if matcher.Match(strings.ToLower(s.Name)) {
			filtered = append(filtered, s)
		}
	}

	state.Shops = filtered

	return state, nil
}

// Format renders the state in the given output format.
func Format(state view.State, format string) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		data, err := report.Markdown(state, time.Now())
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return data, nil

	case FormatYAML:
		var buff bytes.Buffer
		encoder := yaml.NewEncoder(&buff)
		if err := encoder.Encode(state); err != nil {
			return nil, errors.WithStack(err)
		}
		if err := encoder.Close(); err != nil {
			return nil, errors.WithStack(err)
		}
		return buff.Bytes(), nil

	default:
		return []byte(tui.Render(state, tui.DefaultRenderOptions()) + "\n"), nil
	}
}
