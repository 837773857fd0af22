package poster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/tidwall/gjson"
)

const (
	tumblrBaseURL        = "https://api.tumblr.com/v2"
	tumblrDefaultTimeout = 30 * time.Second
)

// APIError is a non-success answer from the Tumblr API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tumblr api error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("tumblr api error (status %d): %s", e.StatusCode, e.Message)
}

// TumblrClient talks to the Tumblr v2 API with OAuth1 signed requests.
type TumblrClient struct {
	httpClient *http.Client
	baseURL    string
}

// TumblrConfig holds configuration for the Tumblr client.
type TumblrConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string

	BaseURL string        // default: https://api.tumblr.com/v2
	Timeout time.Duration // default: 30s
}

// NewTumblrClient creates a client bound to the given credentials.
func NewTumblrClient(cfg TumblrConfig) *TumblrClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = tumblrBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = tumblrDefaultTimeout
	}

	config := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.Token, cfg.TokenSecret)

	// httpClient will automatically authorize http.Request's
	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = timeout

	return &TumblrClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// GetPost fetches a single post.
func (c *TumblrClient) GetPost(ctx context.Context, blog, postID string) (*OriginalPost, error) {
	endpoint := fmt.Sprintf("%s/blog/%s/posts/%s",
		c.baseURL, url.PathEscape(blogIdentifier(blog)), url.PathEscape(postID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	post := gjson.GetBytes(body, "response")
	if nested := post.Get("post"); nested.Exists() {
		post = nested
	}

	result := &OriginalPost{
		ID:        post.Get("id_string").String(),
		Date:      post.Get("date").String(),
		BlogName:  post.Get("blog.name").String(),
		BlogUUID:  post.Get("blog.uuid").String(),
		ReblogKey: post.Get("reblog_key").String(),
	}
	if result.ID == "" {
		result.ID = post.Get("id").String()
	}

	if result.Date == "" || result.ReblogKey == "" {
		return nil, fmt.Errorf("parse response: post %s is missing date or reblog key", postID)
	}

	slog.Debug("fetched post",
		"blog", result.BlogName,
		"id", result.ID,
		"date", result.Date,
	)

	return result, nil
}

// reblogBody is the request body for creating a reblog.
type reblogBody struct {
	ParentTumblelogUUID string         `json:"parent_tumblelog_uuid"`
	ParentPostID        string         `json:"parent_post_id"`
	ReblogKey           string         `json:"reblog_key"`
	State               string         `json:"state,omitempty"`
	PublishOn           string         `json:"publish_on,omitempty"`
	Content             []ContentBlock `json:"content"`
	Tags                string         `json:"tags,omitempty"`
}

// Reblog creates a reblog of an existing post on req.Blog.
func (c *TumblrClient) Reblog(ctx context.Context, req ReblogRequest) (*ReblogResult, error) {
	content := req.Content
	if content == nil {
		content = []ContentBlock{}
	}

	payload, err := json.Marshal(reblogBody{
		ParentTumblelogUUID: req.ParentUUID,
		ParentPostID:        req.PostID,
		ReblogKey:           req.ReblogKey,
		State:               req.State,
		PublishOn:           req.PublishOn,
		Content:             content,
		Tags:                FormatTags(req.Tags),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/blog/%s/posts", c.baseURL, url.PathEscape(blogIdentifier(req.Blog)))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	response := gjson.GetBytes(body, "response")
	result := &ReblogResult{
		ID:          response.Get("id_string").String(),
		State:       response.Get("state").String(),
		DisplayText: response.Get("display_text").String(),
	}
	if result.ID == "" {
		result.ID = response.Get("id").String()
	}

	slog.Info("reblog accepted",
		"blog", req.Blog,
		"parent", req.ParentBlog,
		"id", result.ID,
		"state", result.State,
		"publish_on", req.PublishOn,
	)

	return result, nil
}

// do sends the request and returns the body of a successful response.
func (c *TumblrClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound && req.Method == http.MethodGet {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	return body, nil
}

// errorMessage collects the human readable parts of an error envelope.
func errorMessage(body []byte) string {
	var parts []string
	if msg := gjson.GetBytes(body, "meta.msg").String(); msg != "" {
		parts = append(parts, msg)
	}
	for _, detail := range gjson.GetBytes(body, "errors.#.detail").Array() {
		if d := detail.String(); d != "" {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 && len(body) > 0 && !gjson.ValidBytes(body) {
		parts = append(parts, strings.TrimSpace(string(body)))
	}
	return strings.Join(parts, "; ")
}
