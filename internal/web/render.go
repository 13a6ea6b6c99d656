package web

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/bornholm/scoops/pkg/shop"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/gosimple/slug"
	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer renders a state snapshot as an HTML page.
type Renderer struct {
	tmpl     *template.Template
	basePath string
}

type pageData struct {
	State              view.State
	BasePath           string
	SearchLabel        string
	SearchPlaceholder  string
	SubmitLabel        string
	NoShopsMessage     string
	ReviewsPlaceholder string
}

// ToggleURL returns the link expanding the given shop, or collapsing it
// when it already is the expanded one.
func (d pageData) ToggleURL(shopID string) string {
	query := url.Values{}
	query.Set("city", d.State.City)

	if !d.State.IsExpanded(shopID) {
		query.Set("expand", shopID)
	}

	return d.BasePath + "?" + query.Encode()
}

// anchor returns the element id of the shop card. The shop id keeps it
// unique when several shops share a name.
func anchor(s shop.Shop) string {
	if name := slug.Make(s.Name); name != "" {
		return "shop-" + name + "-" + s.ID
	}

	return "shop-" + s.ID
}

// Render writes the page for the given state.
func (r *Renderer) Render(w io.Writer, state view.State) error {
	data := pageData{
		State:              state,
		BasePath:           r.basePath,
		SearchLabel:        view.SearchLabel,
		SearchPlaceholder:  view.SearchPlaceholder,
		SubmitLabel:        view.SubmitLabel,
		NoShopsMessage:     view.NoShopsMessage,
		ReviewsPlaceholder: view.ReviewsPlaceholder,
	}

	if err := r.tmpl.Execute(w, data); err != nil {
		return errors.Wrap(err, "could not render page")
	}

	return nil
}

// NewRenderer parses the embedded page template. Toggle and search links
// are built relative to basePath.
func NewRenderer(basePath string) (*Renderer, error) {
	if basePath == "" {
		basePath = "/"
	}

	tmpl, err := template.New("page.html").Funcs(template.FuncMap{
		"avatar":      view.Avatar,
		"openLabel":   view.OpenLabel,
		"rating":      view.FormatRating,
		"reviewCount": view.ReviewCountLabel,
		"mapURL":      view.MapURL,
		"date":        view.FormatTimestamp,
		"anchor":      anchor,
	}).ParseFS(templates, "templates/page.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Renderer{tmpl: tmpl, basePath: basePath}, nil
}
