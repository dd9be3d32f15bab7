package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the tag registry.
var (
	ErrTagExists   = errors.New("tag already exists")
	ErrTagNotFound = errors.New("tag not found")
	ErrInvalidTag  = errors.New("tag text and color are required")
)

// TagDefinition is a registry entry giving a keyword its display color.
type TagDefinition struct {
	Text  string `yaml:"text" json:"text"`
	Color string `yaml:"color" json:"color"`
}

// Tags returns the registered tag definitions.
func (c *Catalog) Tags(ctx context.Context) ([]TagDefinition, error) {
	var tags []TagDefinition
	if err := c.load(ctx, TagsKey, &tags); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []TagDefinition{}
	}
	return tags, nil
}

// GetTag looks a tag up case-insensitively.
func (c *Catalog) GetTag(ctx context.Context, text string) (TagDefinition, error) {
	tags, err := c.Tags(ctx)
	if err != nil {
		return TagDefinition{}, err
	}
	if i := indexOfTag(tags, text); i >= 0 {
		return tags[i], nil
	}
	return TagDefinition{}, fmt.Errorf("%w: %s", ErrTagNotFound, text)
}

// AddTag registers a tag. Text is unique ignoring case.
func (c *Catalog) AddTag(ctx context.Context, tag TagDefinition) error {
	tag.Text = strings.TrimSpace(tag.Text)
	tag.Color = strings.TrimSpace(tag.Color)
	if tag.Text == "" || tag.Color == "" {
		return ErrInvalidTag
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tags, err := c.Tags(ctx)
	if err != nil {
		return err
	}
	if indexOfTag(tags, tag.Text) >= 0 {
		return fmt.Errorf("%w: %s", ErrTagExists, tag.Text)
	}
	return c.save(ctx, TagsKey, append(tags, tag))
}

// UpdateTag replaces the tag registered as oldText.
func (c *Catalog) UpdateTag(ctx context.Context, oldText string, tag TagDefinition) error {
	tag.Text = strings.TrimSpace(tag.Text)
	tag.Color = strings.TrimSpace(tag.Color)
	if tag.Text == "" || tag.Color == "" {
		return ErrInvalidTag
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tags, err := c.Tags(ctx)
	if err != nil {
		return err
	}
	i := indexOfTag(tags, oldText)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTagNotFound, oldText)
	}
	if j := indexOfTag(tags, tag.Text); j >= 0 && j != i {
		return fmt.Errorf("%w: %s", ErrTagExists, tag.Text)
	}
	tags[i] = tag
	return c.save(ctx, TagsKey, tags)
}

// DeleteTag removes a tag from the registry.
func (c *Catalog) DeleteTag(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tags, err := c.Tags(ctx)
	if err != nil {
		return err
	}
	i := indexOfTag(tags, text)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTagNotFound, text)
	}
	return c.save(ctx, TagsKey, append(tags[:i], tags[i+1:]...))
}

// ApplyTagColors returns a copy of keywords where uncolored tags take their registry color.
func ApplyTagColors(keywords []KeywordTag, registry []TagDefinition) []KeywordTag {
	out := make([]KeywordTag, len(keywords))
	for i, k := range keywords {
		out[i] = k
		if k.Color != "" {
			continue
		}
		if j := indexOfTag(registry, k.Text); j >= 0 {
			out[i].Color = registry[j].Color
		}
	}
	return out
}

func indexOfTag(tags []TagDefinition, text string) int {
	text = strings.TrimSpace(text)
	for i, t := range tags {
		if strings.EqualFold(t.Text, text) {
			return i
		}
	}
	return -1
}
