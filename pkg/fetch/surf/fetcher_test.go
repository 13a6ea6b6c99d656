package surf

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/scoops/pkg/fetch"
	"github.com/pkg/errors"
)

func TestFetcher(t *testing.T) {
	t.Setenv("HTTP_PROXY", "")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[]`)
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	fetcher := NewFetcher()
	ctx := context.Background()

	body, err := fetcher.Get(ctx, server.URL+"/ok")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := io.ReadAll(body)
	body.Close()
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "[]", string(data); e != g {
		t.Errorf("body: expected '%s', got '%s'", e, g)
	}

	_, err = fetcher.Get(ctx, server.URL+"/broken")
	if err == nil {
		t.Fatal("expected an error, got none")
	}

	if !errors.Is(err, fetch.ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got '%v'", err)
	}

	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected a *fetch.StatusError, got '%T'", err)
	}

	if e, g := http.StatusInternalServerError, statusErr.StatusCode; e != g {
		t.Errorf("statusErr.StatusCode: expected %d, got %d", e, g)
	}

	if e, g := http.StatusText(http.StatusInternalServerError), statusErr.Status; e != g {
		t.Errorf("statusErr.Status: expected '%s', got '%s'", e, g)
	}

	if !strings.Contains(string(statusErr.Body), "boom") {
		t.Errorf("statusErr.Body: expected to contain 'boom', got '%s'", statusErr.Body)
	}
}
