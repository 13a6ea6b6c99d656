package main

import (
	"github.com/bornholm/scoops/internal/command"
	"github.com/bornholm/scoops/internal/command/browse"
	"github.com/bornholm/scoops/internal/command/search"
	"github.com/bornholm/scoops/internal/command/serve"
)

var version = "dev"

func main() {
	command.Main(
		"scoops",
		version,
		"Find ice-cream shops in a city and read their reviews",
		browse.Browse(),
		search.Search(),
		serve.Serve(),
	)
}
