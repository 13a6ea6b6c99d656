// Package report exports a shop browser state as a markdown document.
package report

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/bornholm/scoops/internal/web"
	"github.com/bornholm/scoops/pkg/view"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

type Metadata struct {
	City           string    `yaml:"city"`
	Shops          int       `yaml:"shops"`
	ExpandedShopID string    `yaml:"expanded_shop_id,omitempty"`
	ExpandedShop   string    `yaml:"expanded_shop,omitempty"`
	Reviews        int       `yaml:"reviews,omitempty"`
	GeneratedAt    time.Time `yaml:"generated_at"`
}

// Markdown renders the state as a markdown document preceded by a YAML
// front matter.
func Markdown(state view.State, generatedAt time.Time) ([]byte, error) {
	renderer, err := web.NewRenderer("/")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var page bytes.Buffer
	if err := renderer.Render(&page, state); err != nil {
		return nil, errors.WithStack(err)
	}

	doc, err := goquery.NewDocumentFromReader(&page)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	content := doc.Find("main.content")

	// Interactive controls have no meaning outside of the browser
	content.Find(".toggle").Remove()

	html, err := content.Html()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertString(html)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var buff bytes.Buffer

	if _, err := io.WriteString(&buff, "---\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	metadata := Metadata{
		City:           state.City,
		Shops:          len(state.Shops),
		ExpandedShopID: state.ExpandedShopID,
		Reviews:        len(state.Reviews),
		GeneratedAt:    generatedAt,
	}

	if expanded, ok := state.ExpandedShop(); ok {
		metadata.ExpandedShop = expanded.Name
	}

	encoder := yaml.NewEncoder(&buff)
	if err := encoder.Encode(metadata); err != nil {
		return nil, errors.Wrapf(err, "failed write document metadata")
	}

	if err := encoder.Close(); err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := io.WriteString(&buff, "---\n\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := io.WriteString(&buff, "# Ice-cream shops in "+state.City+"\n\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	if _, err := io.WriteString(&buff, strings.TrimSpace(markdown)+"\n"); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.Bytes(), nil
}
