package blogservice

import (
	"github.com/sushihentaime/inkpost/internal/common"
)

const (
	maxDesLength = 200
	maxTags      = 30
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "you must provide a title to publish the blog")
}

func validateDes(v *common.Validator, des string) {
	v.Check(v.CheckStringLength(des, 1, maxDesLength), "des", "you must provide blog description under 200 characters")
}

func validateBanner(v *common.Validator, banner string) {
	v.Check(banner != "", "banner", "you must provide a blog banner")
}

func validateContent(v *common.Validator, content Content) {
	v.Check(len(content.Blocks) > 0, "content", "there must be some content to publish the blog")
}

func validateTags(v *common.Validator, tags []string) {
	v.Check(len(tags) > 0 && len(tags) <= maxTags, "tags", "provide tags in order to publish the blog, max limit is 30")
}

func validateBlogID(v *common.Validator, blogID string) {
	v.Check(blogID != "", "blog_id", "blog_id must be provided")
}
