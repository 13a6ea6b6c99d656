package view

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bornholm/scoops/internal/logx"
	"github.com/bornholm/scoops/pkg/shop"
	"github.com/pkg/errors"
)

// Controller holds the browser state and mutates it only through Search
// and ToggleExpand.
//
// Operations may overlap: they all share the same loading flag and the
// last one to complete clears it, even if another one is still in
// flight.
type Controller struct {
	client      shop.Client
	defaultCity string
	onChange    ChangeCallback
	logger      *slog.Logger

	mutex sync.RWMutex
	state State
}

type ControllerOptions struct {
	DefaultCity string
	OnChange    ChangeCallback
	Logger      *slog.Logger
}

type ControllerOptionFunc func(opts *ControllerOptions)

// WithDefaultCity sets the city used when a search is submitted blank
func WithDefaultCity(city string) ControllerOptionFunc {
	return func(opts *ControllerOptions) {
		opts.DefaultCity = city
	}
}

// WithChangeCallback registers a callback invoked after each mutation
func WithChangeCallback(fn ChangeCallback) ControllerOptionFunc {
	return func(opts *ControllerOptions) {
		opts.OnChange = fn
	}
}

// WithLogger sets the logger receiving the operations outcome. The
// default logger is used otherwise.
func WithLogger(logger *slog.Logger) ControllerOptionFunc {
	return func(opts *ControllerOptions) {
		opts.Logger = logger
	}
}

// Snapshot returns a copy of the current state, safe to render while
// the controller keeps mutating.
func (c *Controller) Snapshot() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.state.clone()
}

// Search replaces the shop list with the shops of the given city. A
// blank city falls back to the default one. On failure the error is
// logged and the previous shop list is kept.
func (c *Controller) Search(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		city = c.defaultCity
	}

	ctx = logx.WithAttrs(ctx, slog.String("city", city))

	c.update(func(s *State) {
		s.City = city
		s.Loading = true
	})

	defer c.update(func(s *State) {
		s.Loading = false
	})

	c.logger.DebugContext(ctx, "searching shops")

	shops, err := c.client.Shops(ctx, city)
	if err != nil {
		c.logger.WarnContext(ctx, "could not retrieve shops", slog.Any("error", errors.WithStack(err)))
		return errors.WithStack(err)
	}

	if shops == nil {
		shops = []shop.Shop{}
	}

	c.update(func(s *State) {
		s.Shops = shops
	})

	c.logger.InfoContext(ctx, "shops retrieved", slog.Int("total", len(shops)))

	return nil
}

// ToggleExpand collapses the given shop if it is the expanded one,
// otherwise loads its reviews and makes it the expanded shop. On failure
// the error is logged and the expansion is left untouched.
func (c *Controller) ToggleExpand(ctx context.Context, shopID string) error {
	ctx = logx.WithAttrs(ctx, slog.String("shop_id", shopID))

	collapsed := false

	c.update(func(s *State) {
		if s.ExpandedShopID != "" && s.ExpandedShopID == shopID {
			s.ExpandedShopID = ""
			s.Reviews = []shop.Review{}
			collapsed = true
			return
		}

		s.Loading = true
	})

	if collapsed {
		c.logger.DebugContext(ctx, "shop collapsed")
		return nil
	}

	defer c.update(func(s *State) {
		s.Loading = false
	})

	c.logger.DebugContext(ctx, "fetching reviews")

	reviews, err := c.client.Reviews(ctx, shopID)
	if err != nil {
		c.logger.WarnContext(ctx, "could not retrieve reviews", slog.Any("error", errors.WithStack(err)))
		return errors.WithStack(err)
	}

	if reviews == nil {
		reviews = []shop.Review{}
	}

	c.update(func(s *State) {
		s.Reviews = reviews
		s.ExpandedShopID = shopID
	})

	c.logger.InfoContext(ctx, "reviews retrieved", slog.Int("total", len(reviews)))

	return nil
}

func (c *Controller) update(fn func(s *State)) {
	c.mutex.Lock()
	fn(&c.state)
	snapshot := c.state.clone()
	c.mutex.Unlock()

	if c.onChange != nil {
		c.onChange(snapshot)
	}
}

// NewController creates a controller whose state starts on the default
// city, loading until the first search completes.
func NewController(client shop.Client, funcs ...ControllerOptionFunc) *Controller {
	opts := &ControllerOptions{
		DefaultCity: DefaultCity,
	}
	for _, fn := range funcs {
		fn(opts)
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Controller{
		client:      client,
		defaultCity: opts.DefaultCity,
		onChange:    opts.OnChange,
		logger:      opts.Logger,
		state: State{
			City:    opts.DefaultCity,
			Shops:   []shop.Shop{},
			Reviews: []shop.Review{},
			Loading: true,
		},
	}
}
