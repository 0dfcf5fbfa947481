package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"tapas-dl/pkg/services"
)

type App struct {
}

func NewApp() *App {
	return &App{}
}

// Run renders live download progress and blocks until the progress
// channel is closed. The view stays inline so the summary remains on
// the terminal after the program exits.
func (a *App) Run(progress <-chan services.DownloadProgress) error {
	model := newDownloadModel(progress)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}
