package fetch

import (
	"context"
	"io"
)

// Fetcher retrieves the body of a remote resource. Implementations must
// return an error for any non successful response.
type Fetcher interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
}
