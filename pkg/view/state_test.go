package view

import (
	"testing"

	"github.com/bornholm/scoops/pkg/shop"
)

func TestStateExpandedShop(t *testing.T) {
	state := State{
		Shops: []shop.Shop{
			{ID: "s1", Name: "Cold Stone"},
			{ID: "s2", Name: "Jeni's Splendid"},
		},
	}

	if _, ok := state.ExpandedShop(); ok {
		t.Error("expected no expanded shop")
	}

	state.ExpandedShopID = "s2"

	expanded, ok := state.ExpandedShop()
	if !ok {
		t.Fatal("expected an expanded shop")
	}

	if e, g := "Jeni's Splendid", expanded.Name; e != g {
		t.Errorf("expanded.Name: expected '%s', got '%s'", e, g)
	}

	// The expanded shop may belong to a previous search
	state.ExpandedShopID = "s3"

	if _, ok := state.ExpandedShop(); ok {
		t.Error("expected no expanded shop outside of the shop list")
	}
}
