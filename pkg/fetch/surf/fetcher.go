package surf

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bornholm/scoops/pkg/fetch"
	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/pkg/errors"
)

// Fetcher retrieves resources with a browser impersonating client, for
// upstream APIs sitting behind bot protections.
type Fetcher struct {
	timeout time.Duration
}

// Get implements fetch.Fetcher.
func (f *Fetcher) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := f.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()

	if !res.StatusCode.IsSuccess() {
		defer res.Body.Reader.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body.Reader, 4e+6)) // Restrict to 4MB
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.WithStack(&fetch.StatusError{
			StatusCode: int(res.StatusCode),
			Status:     http.StatusText(int(res.StatusCode)),
			Body:       body,
		})
	}

	return res.Body.Reader, nil
}

func (f *Fetcher) getClient() *surf.Client {
	builder := surf.NewClient().
		Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	builder = builder.Impersonate().RandomOS().Chrome().
		Timeout(f.timeout).
		Session()

	return builder.Build()
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		timeout: 30 * time.Second,
	}
}

var _ fetch.Fetcher = &Fetcher{}
