package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/inkpost/internal/common"
)

var (
	ErrRecordNotFound = errors.New("blog not found")
	ErrUserForeignKey = errors.New("author does not exist")
	ErrDuplicateSlug  = fmt.Errorf("duplicate blog id: %w", common.ErrConflict)
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, b *Blog) error {
	if b.Content.Blocks == nil {
		b.Content.Blocks = []json.RawMessage{}
	}

	content, err := json.Marshal(b.Content)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO blogs (blog_id, title, des, banner, content, tags, author, draft)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, published_at`

	args := []any{
		b.BlogID,
		b.Title,
		b.Des,
		b.Banner,
		content,
		pq.Array(b.Tags),
		b.Author,
		b.Draft,
	}

	err = m.db.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.PublishedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "blogs_blog_id_key"):
			return ErrDuplicateSlug
		case common.ForeignKeyViolation(err, "blogs_author_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// addToAuthor bumps the author's post counter by inc and appends the blog
// reference to the author's list.
func (m *BlogModel) addToAuthor(ctx context.Context, authorID, blogID int64, inc int) error {
	query := `
		UPDATE users
		SET total_posts = total_posts + $1, blogs = array_append(blogs, $2)
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, inc, blogID, authorID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

// readBlog increments the blog's read counter and returns the blog joined
// with its author in one statement, so the counter moves exactly once per
// successful read.
func (m *BlogModel) readBlog(ctx context.Context, blogID string) (*BlogView, int64, error) {
	query := `
		UPDATE blogs b
		SET total_reads = b.total_reads + 1
		FROM users u
		WHERE b.blog_id = $1 AND u.id = b.author
		RETURNING b.blog_id, b.title, b.des, b.content, b.banner, b.total_reads, b.tags, b.published_at,
			b.author, u.fullname, u.username, u.profile_img`

	var (
		view     BlogView
		content  []byte
		authorID int64
	)

	err := m.db.QueryRowContext(ctx, query, blogID).Scan(
		&view.BlogID,
		&view.Title,
		&view.Des,
		&content,
		&view.Banner,
		&view.Activity.TotalReads,
		pq.Array(&view.Tags),
		&view.PublishedAt,
		&authorID,
		&view.Author.PersonalInfo.Fullname,
		&view.Author.PersonalInfo.Username,
		&view.Author.PersonalInfo.ProfileImg,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, 0, ErrRecordNotFound
		default:
			return nil, 0, err
		}
	}

	var c Content
	if err := json.Unmarshal(content, &c); err != nil {
		return nil, 0, fmt.Errorf("could not decode content of %s: %w", blogID, err)
	}
	if c.Blocks == nil {
		c.Blocks = []json.RawMessage{}
	}
	view.Content = []Content{c}

	if view.Tags == nil {
		view.Tags = []string{}
	}

	return &view, authorID, nil
}

func (m *BlogModel) incrementAuthorReads(ctx context.Context, authorID int64) error {
	query := `
		UPDATE users
		SET total_reads = total_reads + 1
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, authorID)
	if err != nil {
		return err
	}

	return expectOneRow(res)
}

// getLatestBlogs lists published blogs, newest first.
func (m *BlogModel) getLatestBlogs(ctx context.Context, limit int) ([]BlogSummary, error) {
	query := `
		SELECT b.blog_id, b.title, b.des, b.banner, b.total_reads, b.tags, b.published_at,
			u.fullname, u.username, u.profile_img
		FROM blogs b
		JOIN users u ON u.id = b.author
		WHERE b.draft = FALSE
		ORDER BY b.published_at DESC, b.id DESC
		LIMIT $1`

	rows, err := m.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []BlogSummary{}
	for rows.Next() {
		var b BlogSummary
		err := rows.Scan(
			&b.BlogID,
			&b.Title,
			&b.Des,
			&b.Banner,
			&b.Activity.TotalReads,
			pq.Array(&b.Tags),
			&b.PublishedAt,
			&b.Author.PersonalInfo.Fullname,
			&b.Author.PersonalInfo.Username,
			&b.Author.PersonalInfo.ProfileImg,
		)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
