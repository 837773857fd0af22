package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
)

// ErrInvalidPostURL is returned when a URL does not point at a post.
var ErrInvalidPostURL = errors.New("invalid post url")

// platformHosts serve posts under /<blog>/<id> rather than on a blog host.
var platformHosts = map[string]bool{
	"tumblr.com":     true,
	"www.tumblr.com": true,
}

// PostRef identifies a post by its blog name and numeric ID.
type PostRef struct {
	Blog string
	ID   int64
}

// ParsePostURL extracts the blog name and post ID from a post URL.
//
// Supported forms:
//
//	https://<blog>.tumblr.com/post/<id>[/slug]
//	https://www.tumblr.com/post/<blog>/<id>
//	https://www.tumblr.com/<blog>/<id>[/slug]
func ParsePostURL(raw string) (PostRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return PostRef{}, fmt.Errorf("%w: %v", ErrInvalidPostURL, err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return PostRef{}, fmt.Errorf("%w: %q has no host", ErrInvalidPostURL, raw)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	var blog, id string
	if platformHosts[host] {
		if len(segments) > 0 && segments[0] == "post" {
			segments = segments[1:]
		}
		if len(segments) < 2 {
			return PostRef{}, fmt.Errorf("%w: %q", ErrInvalidPostURL, raw)
		}
		blog, id = segments[0], segments[1]
	} else {
		if len(segments) < 2 || segments[0] != "post" {
			return PostRef{}, fmt.Errorf("%w: %q", ErrInvalidPostURL, raw)
		}
		blog, id = strings.Split(host, ".")[0], segments[1]
	}

	postID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || postID <= 0 {
		return PostRef{}, fmt.Errorf("%w: post id %q is not a number", ErrInvalidPostURL, id)
	}

	return PostRef{Blog: blog, ID: postID}, nil
}

// ShiftDate moves a timestamp years into the future by rewriting its
// leading four-digit year. The rest of the string is kept as is.
func ShiftDate(date string, years int) (string, error) {
	if len(date) < 4 {
		return "", fmt.Errorf("date %q has no year", date)
	}
	for _, r := range date[:4] {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("date %q does not start with a year", date)
		}
	}

	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return "", fmt.Errorf("parse year: %w", err)
	}

	shifted := strconv.Itoa(year+years) + date[4:]

	// e.g. Feb 29 moved into a non-leap year
	if _, err := dateparse.ParseAny(shifted); err != nil {
		slog.Warn("shifted date may be rejected", "date", shifted, "error", err)
	}

	return shifted, nil
}
