package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bornholm/scoops/pkg/shop"
)

const (
	DefaultCity = "Alpharetta"

	SearchLabel       = "City"
	SearchPlaceholder = "Type a city"
	SubmitLabel       = "Search"

	NoShopsMessage     = "No ice-cream shop found for this city :("
	ReviewsPlaceholder = "Click the arrow to show this shop's reviews."

	// DateLayout renders timestamps as DD/MM/YYYY HH:mm.
	DateLayout = "02/01/2006 15:04"
)

// Avatar returns the first letter of the first word of the given name.
func Avatar(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}

	r, _ := utf8.DecodeRuneInString(fields[0])
	if r == utf8.RuneError {
		return ""
	}

	return string(r)
}

func OpenLabel(isClosed bool) string {
	if isClosed {
		return "Closed"
	}
	return "Open"
}

func FormatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}

func ReviewCountLabel(count int) string {
	return fmt.Sprintf("%d Reviews.", count)
}

// MapURL returns a link locating the given coordinates on a map.
func MapURL(c shop.Coordinates) string {
	return fmt.Sprintf("https://maps.google.com?q=%s,%s",
		strconv.FormatFloat(c.Latitude, 'f', -1, 64),
		strconv.FormatFloat(c.Longitude, 'f', -1, 64),
	)
}

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
