package tui

import (
	"fmt"
	"strings"

	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/charmbracelet/lipgloss"
)

const star = "★"

type RenderOptions struct {
	Width int
	// Selected is the index of the highlighted card, -1 for none.
	Selected int
	// Spinner is the current frame of the loading indicator.
	Spinner string
	Styles  Styles
}

func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:    80,
		Selected: -1,
		Styles:   DefaultStyles(),
	}
}

// Render renders the body of the shop browser for the given state.
func Render(state view.State, opts RenderOptions) string {
	body := strings.Join(RenderCards(state, opts), "\n")

	if state.Empty() {
		body = opts.Styles.Message.Render(view.NoShopsMessage)
	}

	if !state.Loading {
		return body
	}

	overlay := renderOverlay(state, opts)
	if body == "" {
		return overlay
	}

	return lipgloss.JoinVertical(lipgloss.Left, overlay, opts.Styles.Underneath.Render(body))
}

// RenderCards renders one block per shop, in the state order.
func RenderCards(state view.State, opts RenderOptions) []string {
	cards := make([]string, 0, len(state.Shops))
	for idx, s := range state.Shops {
		cards = append(cards, renderCard(state, s, idx == opts.Selected, opts))
	}
	return cards
}

func renderOverlay(state view.State, opts RenderOptions) string {
	label := fmt.Sprintf("Loading %s...", state.City)
	if opts.Spinner != "" {
		label = opts.Spinner + " " + label
	}

	box := opts.Styles.Overlay.Render(label)

	return lipgloss.PlaceHorizontal(contentWidth(opts), lipgloss.Center, box)
}

func renderCard(state view.State, s shop.Shop, selected bool, opts RenderOptions) string {
	styles := opts.Styles
	expanded := state.IsExpanded(s.ID)

	var sb strings.Builder

	header := fmt.Sprintf("%s %s  %s",
		styles.Avatar.Render(view.Avatar(s.Name)),
		styles.Name.Render(s.Name),
		styles.Rating.Render(star+" "+view.FormatRating(s.Rating)),
	)
	sb.WriteString(header)
	sb.WriteString("\n")

	if s.IsClosed {
		sb.WriteString(styles.Closed.Render(view.OpenLabel(s.IsClosed)))
	} else {
		sb.WriteString(styles.Open.Render(view.OpenLabel(s.IsClosed)))
	}
	sb.WriteString("\n")

	sb.WriteString(view.ReviewCountLabel(s.ReviewCount))
	sb.WriteString("\n")

	writeField(&sb, styles, "Image", s.ImageURL)
	writeField(&sb, styles, "Site", s.URL)
	writeField(&sb, styles, "Map", view.MapURL(s.Coordinates))
	writeField(&sb, styles, "Phone", s.DisplayPhone)

	toggle := "▸ show reviews"
	if expanded {
		toggle = "▾ hide reviews"
	}
	sb.WriteString(styles.Label.Render(toggle))
	sb.WriteString("\n")

	if !expanded {
		sb.WriteString(styles.Placeholder.Render(view.ReviewsPlaceholder))
	} else {
		sb.WriteString(renderReviews(state.Reviews, styles))
	}

	cardStyle := styles.Card
	if selected {
		cardStyle = styles.CardActive
	}

	return cardStyle.Width(contentWidth(opts) - 2).Render(sb.String())
}

func renderReviews(reviews []shop.Review, styles Styles) string {
	blocks := make([]string, 0, len(reviews))

	for _, r := range reviews {
		var sb strings.Builder

		sb.WriteString(fmt.Sprintf("%s %s  %s  %s",
			styles.Avatar.Render(view.Avatar(r.User.Name)),
			styles.Reviewer.Render(r.User.Name),
			styles.Rating.Render(star+" "+view.FormatRating(r.Rating)),
			styles.Date.Render(view.FormatTimestamp(r.TimeCreated.Time)),
		))
		sb.WriteString("\n")
		sb.WriteString(r.Text)

		if r.URL != "" {
			sb.WriteString("\n")
			sb.WriteString(styles.Label.Render(r.URL))
		}

		blocks = append(blocks, styles.Review.Render(sb.String()))
	}

	return strings.Join(blocks, "\n\n")
}

func writeField(sb *strings.Builder, styles Styles, label, value string) {
	if value == "" {
		return
	}

	sb.WriteString(styles.Label.Render(label + ": "))
	sb.WriteString(value)
	sb.WriteString("\n")
}

func contentWidth(opts RenderOptions) int {
	if opts.Width <= 0 {
		return 80
	}
	return opts.Width
}
