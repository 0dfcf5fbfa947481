package components

import (
	"fmt"
	"strings"

	"tapas-dl/pkg/app/styles"
	"tapas-dl/pkg/services"
)

// ProgressTracker keeps one entry per series currently being downloaded.
// Finished series leave the active set; errored ones stay visible until
// Clear is called.
type ProgressTracker struct {
	downloads map[string]*services.DownloadProgress
	width     int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		downloads: make(map[string]*services.DownloadProgress),
		width:     width,
	}
}

func (p *ProgressTracker) Update(progress services.DownloadProgress) {
	switch progress.Status {
	case "complete", "skipped":
		delete(p.downloads, progress.SeriesID)
	default:
		prog := progress // Copy
		p.downloads[progress.SeriesID] = &prog
	}
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

func (p *ProgressTracker) Clear() {
	p.downloads = make(map[string]*services.DownloadProgress)
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.downloads) > 0
}

func (p *ProgressTracker) View() string {
	if len(p.downloads) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Active Downloads"))
	b.WriteString("\n\n")

	for _, progress := range p.downloads {
		title := progress.SeriesTitle
		if title == "" {
			title = progress.SeriesID
		}
		b.WriteString(styles.TextStyle.Render(title))
		b.WriteString("\n")

		if progress.EpisodeIndex > 0 {
			episodeText := fmt.Sprintf("Episode %d/%d: %s",
				progress.EpisodeIndex, progress.TotalEpisodes, progress.EpisodeTitle)
			b.WriteString(styles.SubtitleStyle.Render(episodeText))
			b.WriteString("\n")
		}

		// Status and progress
		statusText := progress.Status
		if progress.TotalFiles > 0 {
			percentage := float64(progress.CurrentFile) / float64(progress.TotalFiles) * 100
			statusText = fmt.Sprintf("%s (%d/%d files - %.0f%%)",
				progress.Status, progress.CurrentFile, progress.TotalFiles, percentage)

			bar := renderProgressBar(progress.CurrentFile, progress.TotalFiles, p.width-4)
			b.WriteString(bar)
			b.WriteString("\n")
		}

		statusStyle := styles.StatusStyle(progress.Status)
		b.WriteString(statusStyle.Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			errMsg := styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error))
			b.WriteString(errMsg)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	return b.String()
}

func renderProgressBar(current, total, width int) string {
	if total == 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	bar := styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

// SimpleProgress renders a simple progress bar
func SimpleProgress(current, total, width int) string {
	return renderProgressBar(current, total, width)
}
