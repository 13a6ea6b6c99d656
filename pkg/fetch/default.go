package fetch

import (
	"net/http"
)

var defaultFetcher Fetcher = NewHTTPFetcher(http.DefaultClient)

// DefaultFetcher returns the fetcher used by clients created without an
// explicit one.
func DefaultFetcher() Fetcher {
	return defaultFetcher
}
