package utils

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
)

// restrictedChars are additionally stripped in restrict mode, for
// filesystems that reject them. '/' is always stripped.
const restrictedChars = `?<>\:*|"^`

// Sanitize returns segment with '/' removed, plus restrictedChars when
// restrict is set. Removal-only, so sanitizing twice is a no-op.
func Sanitize(segment string, restrict bool) string {
	evil := "/"
	if restrict {
		evil += restrictedChars
	}

	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		if !strings.ContainsRune(evil, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PadIndex renders a 1-based index zero-padded to the width of the
// collection total, so lexicographic order equals numeric order.
func PadIndex(index, total int) string {
	return fmt.Sprintf("%0*d", len(strconv.Itoa(total)), index)
}

// SeriesDirName derives the destination directory name for a series.
// Title and id together keep distinct series from colliding.
func SeriesDirName(title, id string, restrict bool) string {
	return Sanitize(fmt.Sprintf("%s [%s]", title, id), restrict)
}

// ImageFileName names one gallery image within an episode.
func ImageFileName(epIndex, epTotal, imgIndex, imgTotal int, title, ext string, restrict bool) string {
	name := fmt.Sprintf("%s-%s-%s.%s",
		PadIndex(epIndex, epTotal), PadIndex(imgIndex, imgTotal), title, ext)
	return Sanitize(name, restrict)
}

// ProseFileName names the single text file of a prose episode.
func ProseFileName(epIndex, epTotal int, title string, restrict bool) string {
	return Sanitize(fmt.Sprintf("%s-%s.txt", PadIndex(epIndex, epTotal), title), restrict)
}

// ImageExt extracts the extension from an image URL's path, without the
// dot. Unparseable URLs and extensionless paths fall back to jpg.
func ImageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "jpg"
	}
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return "jpg"
	}
	return ext
}
