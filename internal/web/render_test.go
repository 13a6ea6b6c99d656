package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDocument(t *testing.T, state view.State) *goquery.Document {
	t.Helper()

	renderer, err := NewRenderer("/")
	require.NoError(t, err)

	var buff bytes.Buffer
	require.NoError(t, renderer.Render(&buff, state))

	doc, err := goquery.NewDocumentFromReader(&buff)
	require.NoError(t, err)

	return doc
}

func TestRenderNoShops(t *testing.T) {
	doc := renderDocument(t, view.State{City: "Atlanta", Shops: []shop.Shop{}})

	assert.Equal(t, view.NoShopsMessage, doc.Find(".empty").Text())
	assert.Equal(t, 0, doc.Find(".card").Length())

	_, hidden := doc.Find("#backdrop").Attr("hidden")
	assert.True(t, hidden, "backdrop must be hidden when not loading")

	assert.Equal(t, "Atlanta", doc.Find(`input[name="city"]`).AttrOr("value", ""))
}

func TestRenderCardAnchors(t *testing.T) {
	doc := renderDocument(t, view.State{
		City: "Alpharetta",
		Shops: []shop.Shop{
			{ID: "s1", Name: "Cold Stone"},
			{ID: "s2", Name: "Cold Stone"},
			{ID: "s3", Name: "!!!"},
		},
	})

	var ids []string
	doc.Find(".card").Each(func(_ int, card *goquery.Selection) {
		ids = append(ids, card.AttrOr("id", ""))
	})

	assert.Equal(t, []string{"shop-cold-stone-s1", "shop-cold-stone-s2", "shop-s3"}, ids)
}

func TestRenderOneShop(t *testing.T) {
	doc := renderDocument(t, view.State{
		City: "Alpharetta",
		Shops: []shop.Shop{
			{
				ID:           "s1",
				Name:         "Cold Stone",
				Rating:       4,
				ReviewCount:  12,
				URL:          "https://example.com/s1",
				DisplayPhone: "(770) 555-0100",
				Coordinates:  shop.Coordinates{Latitude: 34.07, Longitude: -84.29},
			},
		},
	})

	cards := doc.Find(".card")
	require.Equal(t, 1, cards.Length())

	assert.Equal(t, 0, doc.Find(".empty").Length())
	assert.Equal(t, "shop-cold-stone-s1", cards.AttrOr("id", ""))
	assert.Equal(t, "C", cards.Find("header .avatar").Text())
	assert.Equal(t, "Cold Stone", cards.Find(".name").Text())
	assert.Equal(t, "Open", cards.Find(".status").Text())
	assert.Equal(t, "★ 4", cards.Find(".rating").Text())
	assert.Equal(t, "12 Reviews.", cards.Find(".review-count").Text())
	assert.Equal(t, "https://maps.google.com?q=34.07,-84.29", cards.Find(".map").AttrOr("href", ""))
	assert.Equal(t, "/?city=Alpharetta&expand=s1", cards.Find(".toggle").AttrOr("href", ""))
	assert.Equal(t, view.ReviewsPlaceholder, cards.Find(".review-text-default").Text())
	assert.Equal(t, 0, cards.Find(".review").Length())
}

func TestRenderExpandedShop(t *testing.T) {
	ts := time.Date(2020, time.March, 14, 18, 5, 0, 0, time.Local)

	doc := renderDocument(t, view.State{
		City: "Alpharetta",
		Shops: []shop.Shop{
			{ID: "s1", Name: "Cold Stone", Rating: 4},
			{ID: "s2", Name: "Jeni's", Rating: 4.5},
		},
		ExpandedShopID: "s1",
		Reviews: []shop.Review{
			{ID: "r1", User: shop.User{Name: "Ann"}, Rating: 5, Text: "Great!", TimeCreated: shop.Timestamp{Time: ts}},
		},
	})

	expanded := doc.Find(`.card[data-shop-id="s1"]`)
	require.Equal(t, 1, expanded.Length())

	reviews := expanded.Find(".review")
	require.Equal(t, 1, reviews.Length())

	assert.Equal(t, "Ann", reviews.Find(".review-author").Text())
	assert.Equal(t, "★ 5", reviews.Find(".review-rating").Text())
	assert.Equal(t, "14/03/2020 18:05", reviews.Find(".review-date").Text())
	assert.Equal(t, "Great!", reviews.Find(".review-text").Text())
	assert.True(t, expanded.Find(".toggle").HasClass("expanded"))
	assert.Equal(t, "/?city=Alpharetta", expanded.Find(".toggle").AttrOr("href", ""))

	collapsed := doc.Find(`.card[data-shop-id="s2"]`)
	assert.Equal(t, 0, collapsed.Find(".review").Length())
	assert.Equal(t, view.ReviewsPlaceholder, collapsed.Find(".review-text-default").Text())
	assert.False(t, collapsed.Find(".toggle").HasClass("expanded"))
}

func TestRenderLoading(t *testing.T) {
	doc := renderDocument(t, view.State{City: "Alpharetta", Loading: true})

	_, hidden := doc.Find("#backdrop").Attr("hidden")
	assert.False(t, hidden, "backdrop must be visible while loading")
	assert.Equal(t, 0, doc.Find(".empty").Length())
}
