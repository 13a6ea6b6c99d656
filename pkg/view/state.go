package view

import (
	"slices"

	"github.com/bornholm/scoops/pkg/shop"
)

// State is the state of the shop browser at a given instant.
type State struct {
	City           string        `yaml:"city"`
	Shops          []shop.Shop   `yaml:"shops"`
	ExpandedShopID string        `yaml:"expanded_shop_id,omitempty"`
	Reviews        []shop.Review `yaml:"reviews,omitempty"`
	Loading        bool          `yaml:"loading"`
}

// IsExpanded returns true if the given shop is the expanded one.
func (s State) IsExpanded(shopID string) bool {
	return s.ExpandedShopID != "" && s.ExpandedShopID == shopID
}

// Empty returns true when the search completed without any shop.
func (s State) Empty() bool {
	return !s.Loading && len(s.Shops) == 0
}

// ExpandedShop returns the expanded shop, if it is part of the current
// shop list.
func (s State) ExpandedShop() (shop.Shop, bool) {
	if s.ExpandedShopID == "" {
		return shop.Shop{}, false
	}

	idx := slices.IndexFunc(s.Shops, func(sh shop.Shop) bool {
		return sh.ID == s.ExpandedShopID
	})
	if idx < 0 {
		return shop.Shop{}, false
	}

	return s.Shops[idx], true
}

func (s State) clone() State {
	return State{
		City:           s.City,
		Shops:          slices.Clone(s.Shops),
		ExpandedShopID: s.ExpandedShopID,
		Reviews:        slices.Clone(s.Reviews),
		Loading:        s.Loading,
	}
}
