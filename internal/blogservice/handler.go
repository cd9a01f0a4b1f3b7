package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/sushihentaime/inkpost/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache, logger *slog.Logger) *BlogService {
	return &BlogService{
		m:      newBlogModel(db),
		c:      c,
		logger: logger,
	}
}

// OnSecondaryFailure registers fn to be called whenever a read succeeded but
// the author's read counter could not be updated.
func (s *BlogService) OnSecondaryFailure(fn func(blogID string, err error)) {
	s.onSecondaryFailure = fn
}

// Publish stores a new blog owned by authorID and returns its blog id.
//
// The author's counters are updated after the blog is stored. If that second
// update fails a common.SecondaryUpdateError is returned together with the id
// of the blog, which stays stored.
func (s *BlogService) Publish(ctx context.Context, authorID int64, sub Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}

	f := sub.Fields()

	b := &Blog{
		Title:   f.Title,
		Des:     f.Des,
		Banner:  f.Banner,
		Content: f.Content,
		Tags:    lowerTags(f.Tags),
		Author:  authorID,
		Draft:   sub.Draft(),
	}

	base := slugBase(f.Title)

	// The suffix makes collisions unlikely, the unique constraint makes them impossible.
	for attempt := 1; ; attempt++ {
		id, err := newSlug(base)
		if err != nil {
			return "", err
		}
		b.BlogID = id

		err = s.m.insert(ctx, b)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateSlug) || attempt == maxSlugAttempts {
			return "", err
		}
	}

	inc := 1
	if b.Draft {
		inc = 0
	} else {
		s.invalidateLatest()
	}

	if err := s.m.addToAuthor(ctx, authorID, b.ID, inc); err != nil {
		return b.BlogID, common.SecondaryUpdateError{Op: "update author total posts", Err: err}
	}

	return b.BlogID, nil
}

// Fetch returns the blog identified by blogID and counts the read. The
// author's aggregate counter is updated best-effort: a failure is logged and
// reported to the OnSecondaryFailure hook but does not fail the fetch.
func (s *BlogService) Fetch(ctx context.Context, blogID string) (*BlogView, error) {
	v := common.NewValidator()
	validateBlogID(v, blogID)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	view, authorID, err := s.m.readBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}

	if err := s.m.incrementAuthorReads(ctx, authorID); err != nil {
		serr := common.SecondaryUpdateError{Op: "increment author total reads", Err: err}
		s.logger.Error("secondary update failed", slog.String("blog_id", blogID), slog.Int64("author", authorID), slog.String("error", serr.Error()))

		if s.onSecondaryFailure != nil {
			s.onSecondaryFailure(blogID, serr)
		}
	}

	return view, nil
}

// ListLatest returns the newest published blogs. The result is a snapshot
// cached until it expires or a blog is published.
func (s *BlogService) ListLatest(ctx context.Context) ([]BlogSummary, error) {
	if cached, ok := s.c.Get(common.CacheKeyLatestBlogs); ok {
		if blogs, ok := cached.([]BlogSummary); ok {
			return blogs, nil
		}
	}

	gen := s.latestGeneration()

	blogs, err := s.m.getLatestBlogs(ctx, LatestBlogsLimit)
	if err != nil {
		return nil, err
	}

	s.cacheLatest(gen, blogs)

	return blogs, nil
}

func (s *BlogService) latestGeneration() uint64 {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()
	return s.latestGen
}

// cacheLatest stores blogs only if no publish happened since gen was read,
// so a listing read before an insert never outlives it in the cache.
func (s *BlogService) cacheLatest(gen uint64, blogs []BlogSummary) {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()

	if gen != s.latestGen {
		return
	}
	s.c.Set(common.CacheKeyLatestBlogs, blogs)
}

func (s *BlogService) invalidateLatest() {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()

	s.latestGen++
	s.c.Delete(common.CacheKeyLatestBlogs)
}
