// Package input collects the post URL, body text and tags for a reblog.
package input

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/abdulachik/yearsago/internal/poster"
	"github.com/abdulachik/yearsago/internal/prompt"
)

// BlockSeparator is the literal two-character sequence that starts a new
// content block in the body text.
const BlockSeparator = `\n`

const (
	highlightOn  = "\033[1;41m"
	highlightOff = "\033[1;49m"
)

// ErrTagTooLong is returned when a tag exceeds poster.MaxTagLength.
var ErrTagTooLong = errors.New("tag too long")

// TagLengthError reports the offending tag.
type TagLengthError struct {
	Tag string
}

func (e *TagLengthError) Error() string {
	return fmt.Sprintf("tag %q is longer than %d characters", e.Tag, poster.MaxTagLength)
}

func (e *TagLengthError) Unwrap() error {
	return ErrTagTooLong
}

// ClassifyLine turns one body line into a link block when it is a single
// absolute URL and into a text block otherwise.
func ClassifyLine(line string) poster.ContentBlock {
	trimmed := strings.TrimSpace(line)

	if len(strings.Fields(trimmed)) == 1 {
		if u, err := url.Parse(trimmed); err == nil && u.Scheme != "" && u.Host != "" {
			return poster.LinkBlock(trimmed)
		}
	}

	return poster.TextBlock(trimmed)
}

// ParseContent splits body text on BlockSeparator and classifies each line.
// Lines that are blank after trimming are skipped.
func ParseContent(body string) []poster.ContentBlock {
	blocks := []poster.ContentBlock{}
	if body == "" {
		return blocks
	}

	for _, line := range strings.Split(body, BlockSeparator) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, ClassifyLine(line))
	}

	return blocks
}

// ParseTags splits a comma separated tag line into trimmed tags.
// Empty tags are dropped. A tag longer than poster.MaxTagLength fails the
// whole line with a *TagLengthError.
func ParseTags(line string) ([]string, error) {
	tags := []string{}
	if line == "" {
		return tags, nil
	}

	for _, raw := range strings.Split(line, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if !poster.TagFits(tag) {
			return nil, &TagLengthError{Tag: tag}
		}
		tags = append(tags, tag)
	}

	return tags, nil
}

// HighlightOverflow marks the part of tag beyond the length limit.
func HighlightOverflow(tag string) string {
	if utf8.RuneCountInString(tag) <= poster.MaxTagLength {
		return tag
	}
	runes := []rune(tag)
	return string(runes[:poster.MaxTagLength]) + highlightOn + string(runes[poster.MaxTagLength:]) + highlightOff
}

// Collector asks the user for reblog input.
type Collector struct {
	prompter *prompt.Prompter
}

// NewCollector creates a collector reading through p.
func NewCollector(p *prompt.Prompter) *Collector {
	return &Collector{prompter: p}
}

// PostURL asks for the URL of the post to reblog.
func (c *Collector) PostURL() (string, error) {
	answer, err := c.prompter.AskUntil("Input post URL: ", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
	if err != nil {
		return "", fmt.Errorf("read post url: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// Content asks for the body text and converts it into content blocks.
func (c *Collector) Content() ([]poster.ContentBlock, error) {
	body, err := c.prompter.Ask(`Input post text (\n to start a new block): `)
	if err != nil {
		return nil, fmt.Errorf("read post text: %w", err)
	}
	return ParseContent(body), nil
}

// Tags asks for a tag line until every tag fits the length limit.
func (c *Collector) Tags() ([]string, error) {
	for {
		line, err := c.prompter.Ask("Tags (comma separated): ")
		if err != nil {
			return nil, fmt.Errorf("read tags: %w", err)
		}

		tags, err := ParseTags(line)
		var lengthErr *TagLengthError
		if errors.As(err, &lengthErr) {
			c.prompter.Printf("Tag %s too long, must be %d characters\n",
				HighlightOverflow(lengthErr.Tag), poster.MaxTagLength)
			continue
		}
		if err != nil {
			return nil, err
		}

		return tags, nil
	}
}
