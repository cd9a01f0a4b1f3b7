package blogservice

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/sushihentaime/inkpost/internal/common"
)

const (
	// LatestBlogsLimit is the size of the latest-blogs snapshot.
	LatestBlogsLimit = 5

	slugAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	slugSuffixLength = 10
	maxSlugAttempts  = 3
)

// Content is the editor document of a blog.
type Content struct {
	Time    int64             `json:"time,omitempty"`
	Blocks  []json.RawMessage `json:"blocks"`
	Version string            `json:"version,omitempty"`
}

type Blog struct {
	ID          int64
	BlogID      string
	Title       string
	Des         string
	Banner      string
	Content     Content
	Tags        []string
	Author      int64
	Draft       bool
	TotalReads  int
	PublishedAt time.Time
}

type PersonalInfo struct {
	Fullname   string `json:"fullname"`
	Username   string `json:"username"`
	ProfileImg string `json:"profile_img"`
}

// AuthorView holds only the public fields of a blog's author.
type AuthorView struct {
	PersonalInfo PersonalInfo `json:"personal_info"`
}

type Activity struct {
	TotalReads int `json:"total_reads"`
}

// BlogView is the full blog returned by a fetch.
type BlogView struct {
	BlogID string `json:"blog_id"`
	Title  string `json:"title"`
	Des    string `json:"des"`
	// Content is wrapped in a one-element list; clients read content[0].blocks.
	Content     []Content  `json:"content"`
	Banner      string     `json:"banner"`
	Activity    Activity   `json:"activity"`
	Tags        []string   `json:"tags"`
	PublishedAt time.Time  `json:"publishedAt"`
	Author      AuthorView `json:"author"`
}

// BlogSummary is the projection used by the latest-blogs listing.
type BlogSummary struct {
	BlogID      string     `json:"blog_id"`
	Title       string     `json:"title"`
	Des         string     `json:"des"`
	Banner      string     `json:"banner"`
	Activity    Activity   `json:"activity"`
	Tags        []string   `json:"tags"`
	PublishedAt time.Time  `json:"publishedAt"`
	Author      AuthorView `json:"author"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m      *BlogModel
	c      *common.Cache
	logger *slog.Logger

	onSecondaryFailure func(blogID string, err error)

	latestMu  sync.Mutex
	latestGen uint64
}
