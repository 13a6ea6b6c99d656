package shop

import "context"

// Client lists shops and their reviews from a remote source.
type Client interface {
	Shops(ctx context.Context, location string) ([]Shop, error)
	Reviews(ctx context.Context, shopID string) ([]Review, error)
}
