package blogservice

import (
	"strings"

	"github.com/sushihentaime/inkpost/internal/common"
)

// CreateBlogRequest is the body accepted by the create endpoint.
type CreateBlogRequest struct {
	Title   string   `json:"title"`
	Des     string   `json:"des"`
	Banner  string   `json:"banner"`
	Tags    []string `json:"tags"`
	Content Content  `json:"content"`
	Draft   bool     `json:"draft"`
}

// BlogFields are the author-supplied fields shared by both submission kinds.
type BlogFields struct {
	Title   string
	Des     string
	Banner  string
	Tags    []string
	Content Content
}

// Submission is either a DraftSubmission or a PublishSubmission. Each kind
// carries its own validation contract.
type Submission interface {
	Validate() error
	Draft() bool
	Fields() BlogFields
}

// DraftSubmission is unlisted and accepted without field validation.
type DraftSubmission struct {
	BlogFields
}

func (d DraftSubmission) Validate() error    { return nil }
func (d DraftSubmission) Draft() bool        { return true }
func (d DraftSubmission) Fields() BlogFields { return d.BlogFields }

// PublishSubmission must be complete before it is stored.
type PublishSubmission struct {
	BlogFields
}

func (p PublishSubmission) Validate() error {
	v := common.NewValidator()
	validateTitle(v, p.Title)
	validateDes(v, p.Des)
	validateBanner(v, p.Banner)
	validateContent(v, p.Content)
	validateTags(v, p.Tags)
	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

func (p PublishSubmission) Draft() bool        { return false }
func (p PublishSubmission) Fields() BlogFields { return p.BlogFields }

// NewSubmission picks the submission kind from the request's draft flag.
func NewSubmission(req CreateBlogRequest) Submission {
	fields := BlogFields{
		Title:   req.Title,
		Des:     req.Des,
		Banner:  req.Banner,
		Tags:    req.Tags,
		Content: req.Content,
	}

	if req.Draft {
		return DraftSubmission{fields}
	}

	return PublishSubmission{fields}
}

func lowerTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = strings.ToLower(tag)
	}

	return out
}
