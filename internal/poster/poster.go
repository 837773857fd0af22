package poster

import (
	"context"
	"errors"
)

// StateQueue holds a post for automatic publication at its publish_on time.
const StateQueue = "queue"

// ErrPostNotFound is returned when the requested post does not exist.
var ErrPostNotFound = errors.New("post not found")

// OriginalPost is the subset of a fetched post needed to reblog it.
type OriginalPost struct {
	ID        string
	Date      string
	BlogName  string
	BlogUUID  string
	ReblogKey string
}

// ReblogRequest describes a reblog of an existing post onto Blog.
type ReblogRequest struct {
	Blog       string
	ParentBlog string
	ParentUUID string
	PostID     string
	ReblogKey  string
	State      string
	PublishOn  string
	Content    []ContentBlock
	Tags       []string
}

// ReblogResult represents the API's answer to a reblog.
type ReblogResult struct {
	ID          string
	State       string
	DisplayText string
}

// Client is the interface to the blogging API.
type Client interface {
	// GetPost fetches a single post from a blog.
	GetPost(ctx context.Context, blog, postID string) (*OriginalPost, error)

	// Reblog creates a reblog of an existing post.
	Reblog(ctx context.Context, req ReblogRequest) (*ReblogResult, error)
}
