package poster

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxTagLength is the maximum character count of a single tag.
	MaxTagLength = 140

	// Block types of the Neue Post Format
	BlockText = "text"
	BlockLink = "link"
)

// ContentBlock is one Neue Post Format content block. Text blocks carry
// Text, link blocks carry URL.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// TextBlock creates a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// LinkBlock creates a link content block.
func LinkBlock(url string) ContentBlock {
	return ContentBlock{Type: BlockLink, URL: url}
}

// TagFits checks if a tag is within the length limit.
func TagFits(tag string) bool {
	return utf8.RuneCountInString(tag) <= MaxTagLength
}

// FormatTags joins tags into the comma separated form the API accepts.
func FormatTags(tags []string) string {
	return strings.Join(tags, ",")
}

// blogIdentifier expands a bare blog name into its hostname.
func blogIdentifier(blog string) string {
	if strings.Contains(blog, ".") {
		return blog
	}
	return blog + ".tumblr.com"
}
