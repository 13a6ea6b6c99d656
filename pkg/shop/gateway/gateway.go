// Package gateway implements shop.Client against the ice-cream shops
// HTTP API.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/bornholm/scoops/pkg/fetch"
	"github.com/bornholm/scoops/pkg/shop"
	"github.com/pkg/errors"
)

// ErrInvalidShopID is returned when a shop id cannot be used as a path
// segment of the reviews endpoint.
var ErrInvalidShopID = errors.New("invalid shop id")

type Gateway struct {
	baseURL *url.URL
	fetcher fetch.Fetcher
}

type OptionFunc func(g *Gateway)

func WithFetcher(fetcher fetch.Fetcher) OptionFunc {
	return func(g *Gateway) {
		g.fetcher = fetcher
	}
}

// Fetch issues a GET request on the given path, relative to the gateway
// base URL, and decodes the JSON body into dst.
func (g *Gateway) Fetch(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := g.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	slog.DebugContext(ctx, "fetching", slog.String("url", endpoint.String()))

	body, err := g.fetcher.Get(ctx, endpoint.String())
	if err != nil {
		return errors.Wrapf(err, "could not fetch '%s'", path)
	}

	defer body.Close()

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(dst); err != nil {
		return errors.Wrapf(err, "could not decode '%s' response", path)
	}

	return nil
}

// Shops implements shop.Client.
func (g *Gateway) Shops(ctx context.Context, location string) ([]shop.Shop, error) {
	query := url.Values{}
	query.Set("location", location)

	shops := make([]shop.Shop, 0)
	if err := g.Fetch(ctx, "/shops", query, &shops); err != nil {
		return nil, errors.WithStack(err)
	}

	return shops, nil
}

// Reviews implements shop.Client.
func (g *Gateway) Reviews(ctx context.Context, shopID string) ([]shop.Review, error) {
	// Dot segments would be resolved by the path cleaning of JoinPath and
	// target another endpoint
	switch shopID {
	case "", ".", "..":
		return nil, errors.Wrapf(ErrInvalidShopID, "'%s'", shopID)
	}

	reviews := make([]shop.Review, 0)
	if err := g.Fetch(ctx, "/shops/"+url.PathEscape(shopID)+"/reviews", nil, &reviews); err != nil {
		return nil, errors.WithStack(err)
	}

	return reviews, nil
}

// New creates a gateway targeting the given base URL.
func New(baseURL string, funcs ...OptionFunc) (*Gateway, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base url '%s'", baseURL)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("invalid base url '%s': unsupported scheme '%s'", baseURL, parsed.Scheme)
	}

	g := &Gateway{
		baseURL: parsed,
		fetcher: fetch.DefaultFetcher(),
	}

	for _, fn := range funcs {
		fn(g)
	}

	return g, nil
}

var _ shop.Client = &Gateway{}
