package poster

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *TumblrClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTumblrClient(TumblrConfig{
		ConsumerKey:    "ckey",
		ConsumerSecret: "csecret",
		Token:          "token",
		TokenSecret:    "tsecret",
		BaseURL:        server.URL + "/",
	})
}

func TestNewTumblrClient(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := NewTumblrClient(TumblrConfig{})
		assert.Equal(t, tumblrBaseURL, c.baseURL)
		assert.Equal(t, tumblrDefaultTimeout, c.httpClient.Timeout)
	})

	t.Run("custom values", func(t *testing.T) {
		c := NewTumblrClient(TumblrConfig{BaseURL: "http://localhost:9999/v2/", Timeout: time.Second})
		assert.Equal(t, "http://localhost:9999/v2", c.baseURL)
		assert.Equal(t, time.Second, c.httpClient.Timeout)
	})
}

func TestTumblrClient_GetPost(t *testing.T) {
	t.Run("parses post", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/blog/foo.tumblr.com/posts/42", r.URL.Path)

			auth := r.Header.Get("Authorization")
			assert.True(t, strings.HasPrefix(auth, "OAuth "))
			assert.Contains(t, auth, `oauth_consumer_key="ckey"`)
			assert.Contains(t, auth, `oauth_token="token"`)

			w.Write([]byte(`{
				"meta": {"status": 200, "msg": "OK"},
				"response": {
					"id": 42,
					"id_string": "42",
					"date": "2020-01-01 12:00:00 GMT",
					"reblog_key": "rk",
					"blog": {"name": "foo", "uuid": "t:abc"}
				}
			}`))
		}))

		post, err := c.GetPost(context.Background(), "foo", "42")
		require.NoError(t, err)
		assert.Equal(t, &OriginalPost{
			ID:        "42",
			Date:      "2020-01-01 12:00:00 GMT",
			BlogName:  "foo",
			BlogUUID:  "t:abc",
			ReblogKey: "rk",
		}, post)
	})

	t.Run("nested post object", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {"post": {"id": 7, "date": "2019-07-04T10:00:00Z", "reblog_key": "k", "blog": {"name": "bar", "uuid": "t:x"}}}}`))
		}))

		post, err := c.GetPost(context.Background(), "bar", "7")
		require.NoError(t, err)
		assert.Equal(t, "7", post.ID)
		assert.Equal(t, "2019-07-04T10:00:00Z", post.Date)
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"meta": {"status": 404, "msg": "Not Found"}, "response": []}`))
		}))

		_, err := c.GetPost(context.Background(), "foo", "1")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("incomplete post", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response": {"id": 1}}`))
		}))

		_, err := c.GetPost(context.Background(), "foo", "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing date or reblog key")
	})
}

func TestTumblrClient_Reblog(t *testing.T) {
	t.Run("sends queued reblog", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/blog/myblog.tumblr.com/posts", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "t:abc", body["parent_tumblelog_uuid"])
			assert.Equal(t, "42", body["parent_post_id"])
			assert.Equal(t, "rk", body["reblog_key"])
			assert.Equal(t, "queue", body["state"])
			assert.Equal(t, "2023-01-01 12:00:00 GMT", body["publish_on"])
			assert.Equal(t, "one,two", body["tags"])
			assert.Equal(t, []any{
				map[string]any{"type": "text", "text": "hello world"},
				map[string]any{"type": "link", "url": "https://example.com"},
			}, body["content"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"meta": {"status": 201, "msg": "Created"}, "response": {"id": "99", "state": "queued", "display_text": "Added to queue."}}`))
		}))

		result, err := c.Reblog(context.Background(), ReblogRequest{
			Blog:       "myblog",
			ParentBlog: "foo",
			ParentUUID: "t:abc",
			PostID:     "42",
			ReblogKey:  "rk",
			State:      StateQueue,
			PublishOn:  "2023-01-01 12:00:00 GMT",
			Content:    []ContentBlock{TextBlock("hello world"), LinkBlock("https://example.com")},
			Tags:       []string{"one", "two"},
		})
		require.NoError(t, err)
		assert.Equal(t, &ReblogResult{ID: "99", State: "queued", DisplayText: "Added to queue."}, result)
	})

	t.Run("empty content and tags", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, []any{}, body["content"])
			assert.NotContains(t, body, "tags")

			w.Write([]byte(`{"response": {"id": 5, "display_text": "ok"}}`))
		}))

		result, err := c.Reblog(context.Background(), ReblogRequest{Blog: "myblog", State: StateQueue})
		require.NoError(t, err)
		assert.Equal(t, "5", result.ID)
	})

	t.Run("api rejection", func(t *testing.T) {
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"meta": {"status": 400, "msg": "Bad Request"}, "errors": [{"title": "Bad Request", "detail": "Invalid publish_on"}]}`))
		}))

		_, err := c.Reblog(context.Background(), ReblogRequest{Blog: "myblog"})
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Bad Request; Invalid publish_on", apiErr.Message)
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"meta only", `{"meta": {"msg": "Unauthorized"}}`, "Unauthorized"},
		{"plain text", "upstream timeout", "upstream timeout"},
		{"empty", "", ""},
		{"json without messages", `{"response": []}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorMessage([]byte(tt.body)))
		})
	}
}

// Integration test - requires Tumblr credentials
func TestTumblrClient_Integration(t *testing.T) {
	key := os.Getenv("TUMBLR_CONSUMER_KEY")
	secret := os.Getenv("TUMBLR_CONSUMER_SECRET")
	token := os.Getenv("TUMBLR_ACCESS_TOKEN")
	tokenSecret := os.Getenv("TUMBLR_ACCESS_SECRET")
	blog := os.Getenv("TUMBLR_TEST_BLOG")
	postID := os.Getenv("TUMBLR_TEST_POST_ID")

	if key == "" || secret == "" || token == "" || tokenSecret == "" || blog == "" || postID == "" {
		t.Skip("TUMBLR_* credentials and test post not set")
	}

	c := NewTumblrClient(TumblrConfig{
		ConsumerKey:    key,
		ConsumerSecret: secret,
		Token:          token,
		TokenSecret:    tokenSecret,
	})

	post, err := c.GetPost(context.Background(), blog, postID)
	require.NoError(t, err)
	assert.NotEmpty(t, post.Date)
	assert.NotEmpty(t, post.ReblogKey)

	// Reblogging is not exercised here to avoid filling a real queue
}
