package blogservice

import (
	"regexp"
	"strings"
	"unicode"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonAlphanumericRX = regexp.MustCompile(`[^A-Za-z0-9]`)
	whitespaceRX      = regexp.MustCompile(`\s+`)
)

// slugBase turns a title into the readable part of a blog id. Accents are
// folded first so "Crème" keeps its letters; anything else outside
// [A-Za-z0-9] becomes a separator.
func slugBase(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, title)
	if err != nil {
		folded = title
	}

	s := nonAlphanumericRX.ReplaceAllString(folded, " ")
	s = whitespaceRX.ReplaceAllString(strings.TrimSpace(s), "-")

	return strings.ToLower(s)
}

func newSlug(base string) (string, error) {
	suffix, err := gonanoid.Generate(slugAlphabet, slugSuffixLength)
	if err != nil {
		return "", err
	}

	return base + suffix, nil
}
