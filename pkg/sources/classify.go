package sources

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tapas-dl/pkg/data"
)

// Classify decides which content variant a rendered episode page
// holds. Body images win whenever at least one is present; paragraph
// text is consulted only afterwards. A page with neither comes back as
// an empty prose payload, not an error.
func Classify(r io.Reader) (*data.ContentPayload, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var images []string
	doc.Find("img.content__img").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if src == "" {
			src = sel.AttrOr("data-src", "")
		}
		if src == "" {
			return
		}
		// The CDN signs URLs with query params; the path alone is the
		// stable part.
		if i := strings.Index(src, "?"); i >= 0 {
			src = src[:i]
		}
		images = append(images, src)
	})
	if len(images) > 0 {
		return data.NewImageGallery(images), nil
	}

	var paragraphs []string
	doc.Find("article.viewer__body p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return data.NewProse(paragraphs), nil
}
