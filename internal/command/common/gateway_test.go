package common

import (
	"testing"
	"time"

	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/shop/gateway"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

func TestGatewayConfigValidate(t *testing.T) {
	conf := GatewayConfig{
		APIURL:    "ftp://example.com",
		Transport: "pigeon",
		Retries:   -1,
	}

	err := conf.Validate()
	if err == nil {
		t.Fatal("expected an error, got none")
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("expected a *multierror.Error, got '%T'", err)
	}

	if e, g := 3, len(merr.Errors); e != g {
		t.Errorf("len(merr.Errors): expected %d, got %d", e, g)
	}

	if err := (GatewayConfig{APIURL: "https://api.example.com", Transport: TransportHTTP}).Validate(); err != nil {
		t.Errorf("unexpected error: %+v", err)
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(GatewayConfig{APIURL: "https://api.example.com", Transport: TransportHTTP})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, ok := client.(*gateway.Gateway); !ok {
		t.Errorf("expected a *gateway.Gateway, got '%T'", client)
	}

	client, err = NewClient(GatewayConfig{APIURL: "https://api.example.com", Transport: TransportHTTP, Retries: 2, RetryDelay: time.Millisecond})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, ok := client.(*shop.Retry); !ok {
		t.Errorf("expected a *shop.Retry, got '%T'", client)
	}

	if _, err := NewClient(GatewayConfig{}); err == nil {
		t.Error("expected an error, got none")
	}
}
