package data

import "strings"

type Series struct {
	ID       string
	Title    string
	Author   string
	Episodes []Episode
}

// Episode is one installment of a series. Index is the 1-based position
// in the oldest-first episode list and drives filename ordering.
type Episode struct {
	ID         int
	Title      string
	Accessible bool
	Index      int
}

// PayloadKind tags the content variant detected for an episode.
type PayloadKind int

const (
	ImageGallery PayloadKind = iota // ordered image URLs (comics)
	Prose                           // ordered paragraph text (novels)
)

func (k PayloadKind) String() string {
	if k == ImageGallery {
		return "images"
	}
	return "prose"
}

// ContentPayload holds exactly one variant of extracted episode content.
// An episode with no detected images and no detected paragraphs is an
// empty Prose payload, not an error.
type ContentPayload struct {
	Kind       PayloadKind
	Images     []string
	Paragraphs []string
}

func NewImageGallery(urls []string) *ContentPayload {
	return &ContentPayload{Kind: ImageGallery, Images: urls}
}

func NewProse(paragraphs []string) *ContentPayload {
	return &ContentPayload{Kind: Prose, Paragraphs: paragraphs}
}

// Text joins prose paragraphs with blank lines, ready to write out.
func (p *ContentPayload) Text() string {
	return strings.Join(p.Paragraphs, "\n\n")
}
