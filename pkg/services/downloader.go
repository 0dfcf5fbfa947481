package services

import (
	"fmt"
	"log/slog"
	"strings"

	"tapas-dl/pkg/data"
	"tapas-dl/pkg/sources"
)

// DownloadProgress represents the progress of a series download
type DownloadProgress struct {
	SeriesID      string
	SeriesTitle   string
	EpisodeID     int
	EpisodeTitle  string
	EpisodeIndex  int
	TotalEpisodes int
	CurrentFile   int
	TotalFiles    int
	Status        string // "resolving", "fetching", "persisting", "skipped", "complete", "error"
	Error         error
}

// Downloader walks requested series one at a time: resolve the
// identifier, fetch metadata once, then fetch and persist every
// episode oldest first.
type Downloader struct {
	source       sources.Source
	persister    *Persister
	logger       *slog.Logger
	progressChan chan DownloadProgress
}

// NewDownloader creates a new Downloader instance
func NewDownloader(source sources.Source, persister *Persister, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		source:       source,
		persister:    persister,
		logger:       logger.With("component", "downloader"),
		progressChan: make(chan DownloadProgress, 100),
	}
}

// GetProgressChannel returns the channel for receiving download progress updates
func (d *Downloader) GetProgressChannel() <-chan DownloadProgress {
	return d.progressChan
}

// Run downloads every requested series in order. One series failing
// does not stop the next; the returned error reports how many failed.
func (d *Downloader) Run(inputs []string) error {
	var failed []string
	for _, input := range inputs {
		if err := d.DownloadSeries(input); err != nil {
			d.logger.Error("series failed", "input", input, "error", err)
			failed = append(failed, input)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d series failed: %s", len(failed), len(inputs), strings.Join(failed, ", "))
	}
	return nil
}

// DownloadSeries ingests one series given an id, a name or a series
// URL. An episode page that cannot be fetched abandons the rest of the
// series; a single broken file only gets reported.
func (d *Downloader) DownloadSeries(input string) error {
	id := d.source.ResolveSeriesID(input)
	d.sendProgress(DownloadProgress{SeriesID: id, Status: "resolving"})

	series, err := d.source.GetSeries(id)
	if err != nil {
		d.sendProgress(DownloadProgress{SeriesID: id, Status: "error", Error: err})
		return err
	}
	d.logger.Info("series resolved", "id", id, "title", series.Title, "episodes", len(series.Episodes))

	dir, skip, err := d.persister.PrepareDestination(series)
	if err != nil {
		d.sendProgress(DownloadProgress{SeriesID: id, SeriesTitle: series.Title, Status: "error", Error: err})
		return err
	}
	if skip {
		d.logger.Info("destination already exists, skipping", "series", series.Title, "dir", dir)
		d.sendProgress(DownloadProgress{SeriesID: id, SeriesTitle: series.Title, Status: "skipped"})
		return nil
	}

	total := len(series.Episodes)
	filesFailed := 0

	for i := range series.Episodes {
		episode := &series.Episodes[i]

		d.sendProgress(DownloadProgress{
			SeriesID:      id,
			SeriesTitle:   series.Title,
			EpisodeID:     episode.ID,
			EpisodeTitle:  episode.Title,
			EpisodeIndex:  episode.Index,
			TotalEpisodes: total,
			Status:        "fetching",
		})

		payload, err := d.source.GetEpisodeContent(episode)
		if err != nil {
			d.sendProgress(DownloadProgress{
				SeriesID:      id,
				SeriesTitle:   series.Title,
				EpisodeID:     episode.ID,
				EpisodeTitle:  episode.Title,
				EpisodeIndex:  episode.Index,
				TotalEpisodes: total,
				Status:        "error",
				Error:         err,
			})
			return fmt.Errorf("episode %d %q: %w", episode.Index, episode.Title, err)
		}

		switch payload.Kind {
		case data.ImageGallery:
			stats, err := d.persister.SaveImages(dir, episode, total, payload.Images, d.source.GetImage, func(current, totalFiles int) {
				d.sendProgress(DownloadProgress{
					SeriesID:      id,
					SeriesTitle:   series.Title,
					EpisodeID:     episode.ID,
					EpisodeTitle:  episode.Title,
					EpisodeIndex:  episode.Index,
					TotalEpisodes: total,
					CurrentFile:   current,
					TotalFiles:    totalFiles,
					Status:        "persisting",
				})
			})
			if err != nil {
				filesFailed += stats.Failed
			}
		case data.Prose:
			d.sendProgress(DownloadProgress{
				SeriesID:      id,
				SeriesTitle:   series.Title,
				EpisodeID:     episode.ID,
				EpisodeTitle:  episode.Title,
				EpisodeIndex:  episode.Index,
				TotalEpisodes: total,
				CurrentFile:   1,
				TotalFiles:    1,
				Status:        "persisting",
			})
			if _, err := d.persister.SaveProse(dir, episode, total, payload); err != nil {
				d.logger.Warn("prose write failed", "episode", episode.Title, "error", err)
				filesFailed++
			}
		}
	}

	if filesFailed > 0 {
		err := fmt.Errorf("%d files failed", filesFailed)
		d.sendProgress(DownloadProgress{SeriesID: id, SeriesTitle: series.Title, Status: "error", Error: err})
		return err
	}

	d.sendProgress(DownloadProgress{SeriesID: id, SeriesTitle: series.Title, Status: "complete"})
	return nil
}

// sendProgress sends a progress update (non-blocking)
func (d *Downloader) sendProgress(progress DownloadProgress) {
	select {
	case d.progressChan <- progress:
	default:
		// Channel full, skip this update
	}
}

// Close releases the progress channel once no more work is coming.
func (d *Downloader) Close() {
	close(d.progressChan)
}
