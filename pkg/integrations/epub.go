package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-shiori/go-epub"
)

// EPubBuilder compiles an ingested series directory into a single EPub.
// Zero-padded file names make lexicographic order the reading order, so
// the directory listing is the table of contents: an image gallery
// episode becomes one section of pages, a prose episode one section of
// paragraphs.
type EPubBuilder struct {
	OutputDir string
	Title     string // derived from the directory name when empty
	Author    string
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	if outputDir == "" {
		outputDir = "."
	}
	return &EPubBuilder{OutputDir: outputDir}
}

// Export compiles seriesDir into <OutputDir>/<title>.epub and returns
// the written path.
func (b *EPubBuilder) Export(seriesDir string) (string, error) {
	entries, err := os.ReadDir(seriesDir)
	if err != nil {
		return "", fmt.Errorf("failed to read series directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) || strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no episodes to compile in %s", seriesDir)
	}
	sort.Strings(names)

	title := b.Title
	if title == "" {
		title = seriesTitleFromDir(seriesDir)
	}

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	if b.Author != "" {
		e.SetAuthor(b.Author)
	}
	e.SetLang("en")

	// One section per episode: a txt file stands alone, image files
	// group by their shared episode index prefix.
	var (
		groupKey   string
		groupTitle string
		groupPaths []string
	)
	flush := func() error {
		if len(groupPaths) == 0 {
			return nil
		}
		err := addImageSection(e, groupTitle, groupPaths)
		groupKey, groupTitle, groupPaths = "", "", nil
		return err
	}

	for _, name := range names {
		if strings.HasSuffix(name, ".txt") {
			if err := flush(); err != nil {
				return "", err
			}
			if err := addProseSection(e, filepath.Join(seriesDir, name)); err != nil {
				return "", err
			}
			continue
		}

		base := strings.TrimSuffix(name, filepath.Ext(name))
		key := strings.SplitN(base, "-", 2)[0]
		if key != groupKey {
			if err := flush(); err != nil {
				return "", err
			}
			groupKey, groupTitle = key, stripIndexes(base, 2)
		}
		groupPaths = append(groupPaths, filepath.Join(seriesDir, name))
	}
	if err := flush(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.OutputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

// addProseSection turns one episode text file into a section of
// paragraphs.
func addProseSection(e *epub.Epub, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	title := stripIndexes(strings.TrimSuffix(filepath.Base(path), ".txt"), 1)

	var htmlContent strings.Builder
	htmlContent.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))
	for _, paragraph := range strings.Split(string(content), "\n\n") {
		if paragraph == "" {
			continue
		}
		htmlContent.WriteString(fmt.Sprintf("<p>%s</p>\n", html.EscapeString(paragraph)))
	}

	if _, err := e.AddSection(htmlContent.String(), title, "", ""); err != nil {
		return fmt.Errorf("failed to add section %s: %w", title, err)
	}
	return nil
}

// addImageSection turns one episode's image files into a section of
// pages.
func addImageSection(e *epub.Epub, title string, paths []string) error {
	var htmlContent strings.Builder
	htmlContent.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(title)))

	for i, path := range paths {
		internalPath, err := e.AddImage(path, "")
		if err != nil {
			return fmt.Errorf("failed to add image %s: %w", filepath.Base(path), err)
		}
		htmlContent.WriteString(fmt.Sprintf(
			`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>%s`,
			internalPath, i+1, "\n",
		))
	}

	if _, err := e.AddSection(htmlContent.String(), title, "", ""); err != nil {
		return fmt.Errorf("failed to add section %s: %w", title, err)
	}
	return nil
}

// stripIndexes removes n leading dash-joined index segments from a file
// base name, leaving the episode title.
func stripIndexes(base string, n int) string {
	parts := strings.SplitN(base, "-", n+1)
	return parts[len(parts)-1]
}

// seriesTitleFromDir recovers "<title>" from a "<title> [<id>]"
// directory name.
func seriesTitleFromDir(dir string) string {
	base := filepath.Base(filepath.Clean(dir))
	if i := strings.LastIndex(base, " ["); i > 0 && strings.HasSuffix(base, "]") {
		return base[:i]
	}
	return base
}

// isImageFile checks if a file has an image extension
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif" || ext == ".webp"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
