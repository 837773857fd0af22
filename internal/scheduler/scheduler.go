// Package scheduler queues a reblog of a past post a number of years after
// its original date.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/abdulachik/yearsago/internal/db"
	"github.com/abdulachik/yearsago/internal/poster"
)

// Recorder keeps a journal of queued reblogs.
type Recorder interface {
	CreateReblog(ctx context.Context, arg db.CreateReblogParams) (db.Reblog, error)
	CountReblogsBySource(ctx context.Context, arg db.CountReblogsBySourceParams) (int64, error)
}

// Rescheduler fetches an original post and queues its reblog.
type Rescheduler struct {
	client   poster.Client
	blog     string
	yearsAgo int
	recorder Recorder
	dryRun   bool
}

// Config holds rescheduler configuration.
type Config struct {
	Client   poster.Client
	Blog     string // destination blog
	YearsAgo int
	Recorder Recorder // optional
	DryRun   bool
}

// New creates a new rescheduler.
func New(cfg Config) *Rescheduler {
	return &Rescheduler{
		client:   cfg.Client,
		blog:     cfg.Blog,
		yearsAgo: cfg.YearsAgo,
		recorder: cfg.Recorder,
		dryRun:   cfg.DryRun,
	}
}

// Request is what the user asked to reblog.
type Request struct {
	PostURL string
	Content []poster.ContentBlock
	Tags    []string
}

// Result describes a queued (or, in dry-run mode, prepared) reblog.
type Result struct {
	Source      PostRef
	Reblog      poster.ReblogRequest
	DisplayText string
	Queued      bool

	// PreviousReblogs counts earlier history entries for the same post.
	PreviousReblogs int64
}

// Run reblogs the post at req.PostURL into the queue of the destination
// blog, dated yearsAgo years after the original.
func (r *Rescheduler) Run(ctx context.Context, req Request) (*Result, error) {
	ref, err := ParsePostURL(req.PostURL)
	if err != nil {
		return nil, err
	}

	logger := slog.With("blog", ref.Blog, "post_id", ref.ID)

	post, err := r.client.GetPost(ctx, ref.Blog, strconv.FormatInt(ref.ID, 10))
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	publishOn, err := ShiftDate(post.Date, r.yearsAgo)
	if err != nil {
		return nil, fmt.Errorf("shift date: %w", err)
	}
	logger.Debug("shifted publish date", "original", post.Date, "publish_on", publishOn)

	reblog := poster.ReblogRequest{
		Blog:       r.blog,
		ParentBlog: post.BlogName,
		ParentUUID: post.BlogUUID,
		PostID:     strconv.FormatInt(ref.ID, 10),
		ReblogKey:  post.ReblogKey,
		State:      poster.StateQueue,
		PublishOn:  publishOn,
		Content:    req.Content,
		Tags:       req.Tags,
	}

	result := &Result{
		Source:          ref,
		Reblog:          reblog,
		PreviousReblogs: r.previousReblogs(ctx, reblog),
	}

	if r.dryRun {
		logger.Info("dry run, not queueing", "publish_on", publishOn)
		return result, nil
	}

	resp, err := r.client.Reblog(ctx, reblog)
	if err != nil {
		return nil, fmt.Errorf("reblog post: %w", err)
	}

	result.DisplayText = resp.DisplayText
	result.Queued = true

	r.record(ctx, result, resp)

	return result, nil
}

func (r *Rescheduler) previousReblogs(ctx context.Context, reblog poster.ReblogRequest) int64 {
	if r.recorder == nil {
		return 0
	}

	count, err := r.recorder.CountReblogsBySource(ctx, db.CountReblogsBySourceParams{
		SourceBlog:   reblog.ParentBlog,
		SourcePostID: reblog.PostID,
	})
	if err != nil {
		slog.Warn("failed to check reblog history", "error", err)
		return 0
	}
	if count > 0 {
		slog.Warn("post was queued before", "blog", reblog.ParentBlog, "post_id", reblog.PostID, "times", count)
	}
	return count
}

func (r *Rescheduler) record(ctx context.Context, result *Result, resp *poster.ReblogResult) {
	if r.recorder == nil {
		return
	}

	_, err := r.recorder.CreateReblog(ctx, db.CreateReblogParams{
		SourceBlog:      result.Reblog.ParentBlog,
		SourcePostID:    result.Reblog.PostID,
		DestinationBlog: result.Reblog.Blog,
		ReblogID:        resp.ID,
		PublishOn:       result.Reblog.PublishOn,
		State:           resp.State,
		DisplayText:     resp.DisplayText,
	})
	if err != nil {
		slog.Warn("failed to record reblog", "error", err)
	}
}
