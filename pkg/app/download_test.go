package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tapas-dl/pkg/services"
)

func TestNewDownloadModel(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	if model == nil {
		t.Fatal("Expected model to be created")
	}

	if model.tracker == nil {
		t.Error("Expected model to have a tracker")
	}
}

func TestWaitForProgress(t *testing.T) {
	ch := make(chan services.DownloadProgress, 1)
	ch <- services.DownloadProgress{SeriesID: "42", Status: "resolving"}

	msg := waitForProgress(ch)()

	progress, ok := msg.(progressMsg)
	if !ok {
		t.Fatalf("Expected progressMsg, got %T", msg)
	}

	if progress.SeriesID != "42" {
		t.Errorf("Expected series id 42, got %s", progress.SeriesID)
	}
}

func TestWaitForProgressClosedChannel(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	close(ch)

	msg := waitForProgress(ch)()

	if _, ok := msg.(progressClosedMsg); !ok {
		t.Errorf("Expected progressClosedMsg, got %T", msg)
	}
}

func TestDownloadModelUpdateProgress(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	updated, cmd := model.Update(progressMsg(services.DownloadProgress{
		SeriesID:    "42",
		SeriesTitle: "Test Series",
		Status:      "fetching",
	}))

	m := updated.(*downloadModel)
	if !m.tracker.HasActive() {
		t.Error("Expected tracker to have an active download")
	}

	if cmd == nil {
		t.Error("Expected a command to wait for the next update")
	}
}

func TestDownloadModelCollectsFinished(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	model.Update(progressMsg(services.DownloadProgress{
		SeriesID: "42",
		Status:   "fetching",
	}))
	model.Update(progressMsg(services.DownloadProgress{
		SeriesID:    "42",
		SeriesTitle: "Test Series",
		Status:      "complete",
	}))

	if len(model.finished) != 1 {
		t.Fatalf("Expected 1 finished series, got %d", len(model.finished))
	}

	if model.tracker.HasActive() {
		t.Error("Expected complete series to leave the tracker")
	}
}

func TestDownloadModelQuitsWhenChannelCloses(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	_, cmd := model.Update(progressClosedMsg{})

	if cmd == nil {
		t.Fatal("Expected a quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg when channel closes")
	}
}

func TestDownloadModelQuitsOnCtrlC(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	_, cmd := model.Update(tea.KeyMsg(tea.Key{Type: tea.KeyCtrlC}))

	if cmd == nil {
		t.Fatal("Expected a quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg on ctrl+c")
	}
}

func TestDownloadModelView(t *testing.T) {
	ch := make(chan services.DownloadProgress)
	model := newDownloadModel(ch)

	model.Update(progressMsg(services.DownloadProgress{
		SeriesID:    "1",
		SeriesTitle: "Done Series",
		Status:      "complete",
	}))
	model.Update(progressMsg(services.DownloadProgress{
		SeriesID:    "2",
		SeriesTitle: "Busy Series",
		Status:      "fetching",
	}))

	view := model.View()

	if !strings.Contains(view, "Done Series") {
		t.Error("Expected finished series in view")
	}

	if !strings.Contains(view, "Active Downloads") {
		t.Error("Expected active downloads section")
	}

	if !strings.Contains(view, "Busy Series") {
		t.Error("Expected active series in view")
	}
}

func TestSummaryLine(t *testing.T) {
	complete := summaryLine(services.DownloadProgress{
		SeriesTitle: "Test Series",
		Status:      "complete",
	})

	if !strings.Contains(complete, "Test Series") {
		t.Error("Expected title in summary line")
	}

	skipped := summaryLine(services.DownloadProgress{
		SeriesID: "42",
		Status:   "skipped",
	})

	if !strings.Contains(skipped, "42") {
		t.Error("Expected series id fallback in summary line")
	}

	if !strings.Contains(skipped, "already downloaded") {
		t.Error("Expected skip note in summary line")
	}
}

func TestNewApp(t *testing.T) {
	if NewApp() == nil {
		t.Fatal("Expected app to be created")
	}
}
