package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Product is a catalog entry.
type Product struct {
	Code        string       `yaml:"code" json:"code"`
	Description string       `yaml:"description" json:"description"`
	Keywords    []KeywordTag `yaml:"keywords" json:"keywords"`

	// Image is base64 encoded, optionally as a data URL.
	Image string `yaml:"image,omitempty" json:"image,omitempty"`

	CreatedAt time.Time  `yaml:"created_at" json:"created_at"`
	UpdatedAt *time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// KeywordTag is a product label. Tags without a color encode as a bare string.
type KeywordTag struct {
	Text  string
	Color string
}

// taggedForm is the structured encoding of a KeywordTag.
type taggedForm struct {
	Text  string `yaml:"text" json:"text"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Tag builds a plain keyword tag.
func Tag(text string) KeywordTag {
	return KeywordTag{Text: text}
}

// Tags builds plain keyword tags.
func Tags(texts ...string) []KeywordTag {
	tags := make([]KeywordTag, 0, len(texts))
	for _, t := range texts {
		tags = append(tags, Tag(t))
	}
	return tags
}

// ParseTags splits a comma separated list ("plafon, led") into tags.
func ParseTags(list string) []KeywordTag {
	var tags []KeywordTag
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, Tag(part))
		}
	}
	return tags
}

// MarshalJSON encodes the tag as a string or as {"text","color"}.
func (t KeywordTag) MarshalJSON() ([]byte, error) {
	if t.Color == "" {
		return json.Marshal(t.Text)
	}
	return json.Marshal(taggedForm(t))
}

// UnmarshalJSON accepts both the string and the object form.
func (t *KeywordTag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*t = KeywordTag{Text: text}
		return nil
	}

	var form taggedForm
	if err := json.Unmarshal(data, &form); err != nil {
		return fmt.Errorf("keyword tag must be a string or {text, color}: %w", err)
	}
	*t = KeywordTag(form)
	return nil
}

// MarshalYAML encodes the tag as a scalar or as a text/color mapping.
func (t KeywordTag) MarshalYAML() (interface{}, error) {
	if t.Color == "" {
		return t.Text, nil
	}
	return taggedForm(t), nil
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (t *KeywordTag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var text string
		if err := value.Decode(&text); err != nil {
			return err
		}
		*t = KeywordTag{Text: text}
		return nil
	}

	var form taggedForm
	if err := value.Decode(&form); err != nil {
		return fmt.Errorf("keyword tag must be a string or {text, color}: %w", err)
	}
	*t = KeywordTag(form)
	return nil
}

// KeywordTexts returns the text of every tag, in order.
func (p Product) KeywordTexts() []string {
	texts := make([]string, 0, len(p.Keywords))
	for _, k := range p.Keywords {
		texts = append(texts, k.Text)
	}
	return texts
}

// normalizeKeywords trims and lowercases tag text and drops empty tags.
func normalizeKeywords(tags []KeywordTag) []KeywordTag {
	out := make([]KeywordTag, 0, len(tags))
	for _, t := range tags {
		text := strings.ToLower(strings.TrimSpace(t.Text))
		if text == "" {
			continue
		}
		out = append(out, KeywordTag{Text: text, Color: strings.TrimSpace(t.Color)})
	}
	return out
}
