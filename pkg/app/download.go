package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"tapas-dl/pkg/app/components"
	"tapas-dl/pkg/app/styles"
	"tapas-dl/pkg/services"
)

type progressMsg services.DownloadProgress

type progressClosedMsg struct{}

// downloadModel renders downloader progress until the channel closes.
// Finished series collapse into one summary line each; errored series
// stay expanded in the tracker so the failure is still on screen when
// the program exits.
type downloadModel struct {
	progress <-chan services.DownloadProgress
	tracker  *components.ProgressTracker
	finished []services.DownloadProgress
}

func newDownloadModel(progress <-chan services.DownloadProgress) *downloadModel {
	return &downloadModel{
		progress: progress,
		tracker:  components.NewProgressTracker(60),
	}
}

func waitForProgress(ch <-chan services.DownloadProgress) tea.Cmd {
	return func() tea.Msg {
		progress, ok := <-ch
		if !ok {
			return progressClosedMsg{}
		}
		return progressMsg(progress)
	}
}

func (m *downloadModel) Init() tea.Cmd {
	return waitForProgress(m.progress)
}

func (m *downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.tracker.SetWidth(msg.Width)
	case progressMsg:
		update := services.DownloadProgress(msg)
		m.tracker.Update(update)
		if update.Status == "complete" || update.Status == "skipped" {
			m.finished = append(m.finished, update)
		}
		return m, waitForProgress(m.progress)
	case progressClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m *downloadModel) View() string {
	var b strings.Builder

	for _, progress := range m.finished {
		b.WriteString(summaryLine(progress))
		b.WriteString("\n")
	}

	if m.tracker.HasActive() {
		if len(m.finished) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.tracker.View())
	}

	b.WriteString(styles.HelpStyle.Render("ctrl+c to abort"))
	b.WriteString("\n")

	return b.String()
}

func summaryLine(progress services.DownloadProgress) string {
	title := progress.SeriesTitle
	if title == "" {
		title = progress.SeriesID
	}

	if progress.Status == "skipped" {
		return styles.StatusSkipped.Render("• " + title + " (already downloaded)")
	}
	return styles.StatusCompleted.Render("✓ " + title)
}
