package db

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the history statements against a connection or transaction.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Reblog is one queued reblog in the history.
type Reblog struct {
	ID              int64
	SourceBlog      string
	SourcePostID    string
	DestinationBlog string
	ReblogID        string
	PublishOn       string
	State           string
	DisplayText     string
	CreatedAt       time.Time
}

const createReblog = `
INSERT INTO reblogs (
    source_blog, source_post_id, destination_blog, reblog_id, publish_on, state, display_text
) VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, source_blog, source_post_id, destination_blog, reblog_id, publish_on, state, display_text, created_at
`

type CreateReblogParams struct {
	SourceBlog      string
	SourcePostID    string
	DestinationBlog string
	ReblogID        string
	PublishOn       string
	State           string
	DisplayText     string
}

func (q *Queries) CreateReblog(ctx context.Context, arg CreateReblogParams) (Reblog, error) {
	row := q.db.QueryRowContext(ctx, createReblog,
		arg.SourceBlog,
		arg.SourcePostID,
		arg.DestinationBlog,
		arg.ReblogID,
		arg.PublishOn,
		arg.State,
		arg.DisplayText,
	)
	var i Reblog
	err := row.Scan(
		&i.ID,
		&i.SourceBlog,
		&i.SourcePostID,
		&i.DestinationBlog,
		&i.ReblogID,
		&i.PublishOn,
		&i.State,
		&i.DisplayText,
		&i.CreatedAt,
	)
	return i, err
}

const listReblogs = `
SELECT id, source_blog, source_post_id, destination_blog, reblog_id, publish_on, state, display_text, created_at
FROM reblogs
ORDER BY created_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListReblogs(ctx context.Context, limit int64) ([]Reblog, error) {
	rows, err := q.db.QueryContext(ctx, listReblogs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reblog
	for rows.Next() {
		var i Reblog
		if err := rows.Scan(
			&i.ID,
			&i.SourceBlog,
			&i.SourcePostID,
			&i.DestinationBlog,
			&i.ReblogID,
			&i.PublishOn,
			&i.State,
			&i.DisplayText,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countReblogs = `SELECT COUNT(*) FROM reblogs`

func (q *Queries) CountReblogs(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countReblogs)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countReblogsBySource = `
SELECT COUNT(*) FROM reblogs WHERE source_blog = ? AND source_post_id = ?
`

type CountReblogsBySourceParams struct {
	SourceBlog   string
	SourcePostID string
}

func (q *Queries) CountReblogsBySource(ctx context.Context, arg CountReblogsBySourceParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, countReblogsBySource, arg.SourceBlog, arg.SourcePostID)
	var count int64
	err := row.Scan(&count)
	return count, err
}
