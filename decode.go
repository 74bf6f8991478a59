package deckgen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/go-deckgen/internal/markup"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// rawSlide accepts any value per field; upstream producers send lists,
// objects or numbers where text is expected.
type rawSlide struct {
	Title   any `json:"title" yaml:"title"`
	Content any `json:"content" yaml:"content"`
	Type    any `json:"type" yaml:"type"`
}

func (r rawSlide) slide() Slide {
	return Slide{
		Title:   markup.NormalizeValue(r.Title),
		Content: markup.NormalizeValue(r.Content),
		Type:    SlideType(strings.TrimSpace(markup.NormalizeValue(r.Type))),
	}
}

// UnmarshalJSON normalizes non-string field values to text.
func (s *Slide) UnmarshalJSON(data []byte) error {
	var raw rawSlide
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = raw.slide()
	return nil
}

// UnmarshalYAML normalizes non-string field values to text.
func (s *Slide) UnmarshalYAML(unmarshal func(any) error) error {
	var raw rawSlide
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*s = raw.slide()
	return nil
}

// DecodeRequest parses a JSON or YAML request body. Structural problems
// (unparseable input, missing title, slides missing, not a list or empty,
// unsupported format) are reported as errors wrapping ErrInvalidStructure
// before any slide is decoded.
func DecodeRequest(data []byte) (Request, error) {
	unmarshal := yamlutil.Unmarshal
	if looksLikeJSON(data) {
		unmarshal = json.Unmarshal
	}

	var probe map[string]any
	if err := unmarshal(data, &probe); err != nil {
		return Request{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	if probe == nil {
		return Request{}, fmt.Errorf("%w: empty request", ErrInvalidStructure)
	}

	title := strings.TrimSpace(markup.NormalizeValue(probe["title"]))
	if title == "" {
		return Request{}, ErrMissingTitle
	}

	rawSlides, ok := probe["slides"].([]any)
	if !ok {
		return Request{}, ErrSlidesNotList
	}
	if len(rawSlides) == 0 {
		return Request{}, ErrNoSlides
	}

	format, err := ParseFormat(markup.NormalizeValue(probe["format"]))
	if err != nil {
		return Request{}, err
	}

	var body struct {
		Slides []Slide `json:"slides" yaml:"slides"`
	}
	if err := unmarshal(data, &body); err != nil {
		return Request{}, fmt.Errorf("%w: slides: %v", ErrInvalidStructure, err)
	}

	return Request{
		Presentation: Presentation{
			Title:  markup.NormalizeValue(probe["title"]),
			Slides: body.Slides,
		},
		Format: format,
		Author: markup.NormalizeValue(probe["author"]),
	}, nil
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
