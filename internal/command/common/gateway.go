package common

import (
	"net/http"
	"net/url"
	"time"

	"github.com/bornholm/scoops/pkg/fetch"
	"github.com/bornholm/scoops/pkg/fetch/surf"
	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/shop/gateway"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	TransportHTTP = "http"
	TransportSurf = "surf"
)

// GatewayFlags returns the flags configuring the shops API client.
func GatewayFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   "",
			Aliases: []string{"u"},
			EnvVars: []string{"SCOOPS_API_URL", "ICE_CREAM_API"},
			Usage:   "Base url of the ice-cream shops API",
		},
		&cli.StringFlag{
			Name:    "transport",
			Value:   TransportHTTP,
			EnvVars: []string{"SCOOPS_TRANSPORT"},
			Usage:   "Transport used to reach the API (http or surf)",
		},
		&cli.IntFlag{
			Name:    "retries",
			Value:   0,
			EnvVars: []string{"SCOOPS_RETRIES"},
			Usage:   "Number of retries of a failed API request",
		},
		&cli.DurationFlag{
			Name:    "retry-delay",
			Value:   time.Second,
			EnvVars: []string{"SCOOPS_RETRY_DELAY"},
			Usage:   "Base delay between two retries",
		},
	}
}

type GatewayConfig struct {
	APIURL     string
	Transport  string
	Retries    int
	RetryDelay time.Duration
}

// Validate reports every configuration problem at once.
func (c GatewayConfig) Validate() error {
	var err error

	if c.APIURL == "" {
		err = multierror.Append(err, errors.New("api url must be defined (--api-url or SCOOPS_API_URL)"))
	} else if parsed, parseErr := url.Parse(c.APIURL); parseErr != nil {
		err = multierror.Append(err, errors.Wrapf(parseErr, "invalid api url '%s'", c.APIURL))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		err = multierror.Append(err, errors.Errorf("invalid api url '%s': scheme must be http or https", c.APIURL))
	}

	if c.Transport != TransportHTTP && c.Transport != TransportSurf {
		err = multierror.Append(err, errors.Errorf("unknown transport '%s'", c.Transport))
	}

	if c.Retries < 0 {
		err = multierror.Append(err, errors.Errorf("retries must be positive, got %d", c.Retries))
	}

	if c.Retries > 0 && c.RetryDelay <= 0 {
		err = multierror.Append(err, errors.Errorf("retry delay must be positive, got %s", c.RetryDelay))
	}

	return err
}

func GatewayConfigFromContext(ctx *cli.Context) GatewayConfig {
	return GatewayConfig{
		APIURL:     ctx.String("api-url"),
		Transport:  ctx.String("transport"),
		Retries:    ctx.Int("retries"),
		RetryDelay: ctx.Duration("retry-delay"),
	}
}

// NewClient creates the shops API client described by the configuration.
func NewClient(conf GatewayConfig) (shop.Client, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gateway configuration")
	}

	var fetcher fetch.Fetcher
	switch conf.Transport {
	case TransportSurf:
		fetcher = surf.NewFetcher()
	default:
		fetcher = fetch.NewHTTPFetcher(http.DefaultClient)
	}

	gw, err := gateway.New(conf.APIURL, gateway.WithFetcher(fetcher))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var client shop.Client = gw

	if conf.Retries > 0 {
		client = shop.WithRetry(client, conf.Retries, conf.RetryDelay)
	}

	return client, nil
}

// NewClientFromContext creates the shops API client from the command flags.
func NewClientFromContext(ctx *cli.Context) (shop.Client, error) {
	return NewClient(GatewayConfigFromContext(ctx))
}
