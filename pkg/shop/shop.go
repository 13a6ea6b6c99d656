package shop

import (
	"bytes"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Shop is an ice-cream shop as returned by the search endpoint.
type Shop struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Rating       float64     `json:"rating" yaml:"rating"`
	ReviewCount  int         `json:"review_count" yaml:"review_count"`
	IsClosed     bool        `json:"is_closed" yaml:"is_closed"`
	ImageURL     string      `json:"image_url" yaml:"image_url"`
	URL          string      `json:"url" yaml:"url"`
	DisplayPhone string      `json:"display_phone" yaml:"display_phone"`
	Coordinates  Coordinates `json:"coordinates" yaml:"coordinates"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Review is a user evaluation of a shop.
type Review struct {
	ID          string    `json:"id" yaml:"id"`
	User        User      `json:"user" yaml:"user"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Text        string    `json:"text" yaml:"text"`
	TimeCreated Timestamp `json:"time_created" yaml:"time_created"`
	URL         string    `json:"url" yaml:"url"`
}

type User struct {
	Name     string `json:"name" yaml:"name"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// TimestampLayout is the layout used by the reviews endpoint.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp accepts both the reviews endpoint layout and RFC 3339.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, time.RFC3339} {
		parsed, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}

	return errors.Errorf("invalid timestamp '%s'", raw)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}

	return t.Format(TimestampLayout), nil
}
