package services

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"tapas-dl/pkg/data"
	"tapas-dl/pkg/utils"
)

// ImageFetch pulls one image body by URL.
type ImageFetch func(url string) ([]byte, error)

// ImageStats counts what SaveImages did for one episode.
type ImageStats struct {
	Saved   int
	Skipped int
	Failed  int
}

// Persister owns the on-disk layout of a library: one directory per
// series, flat deterministic file names inside it. A series directory
// that already exists is treated as a finished download.
type Persister struct {
	baseDir  string
	restrict bool
	force    bool
	workers  int
	logger   *slog.Logger
}

func NewPersister(baseDir string, restrict, force bool, workers int, logger *slog.Logger) *Persister {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{
		baseDir:  baseDir,
		restrict: restrict,
		force:    force,
		workers:  workers,
		logger:   logger.With("component", "persister"),
	}
}

// SeriesDir is the destination directory of a series.
func (p *Persister) SeriesDir(series *data.Series) string {
	return filepath.Join(p.baseDir, utils.SeriesDirName(series.Title, series.ID, p.restrict))
}

// PrepareDestination creates the series directory. When it is already
// present and force is off, skip comes back true and nothing is
// touched.
func (p *Persister) PrepareDestination(series *data.Series) (dir string, skip bool, err error) {
	dir = p.SeriesDir(series)
	if _, statErr := os.Stat(dir); statErr == nil && !p.force {
		return dir, true, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, false, nil
}

// SaveProse writes the episode text file, overwriting any previous
// copy. Empty prose still produces a file so the episode is accounted
// for on disk.
func (p *Persister) SaveProse(dir string, episode *data.Episode, totalEpisodes int, payload *data.ContentPayload) (string, error) {
	name := utils.ProseFileName(episode.Index, totalEpisodes, episode.Title, p.restrict)
	path := filepath.Join(dir, name)
	if err := writeFileAtomic(path, []byte(payload.Text())); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// SaveImages writes one file per image URL under the zero-padded
// episode and image indices. A file already on disk is never fetched
// again, force or not; existence is the only check, content is not
// re-verified. A broken image never stops the rest of the episode;
// the returned error aggregates the failures.
func (p *Persister) SaveImages(dir string, episode *data.Episode, totalEpisodes int, urls []string, fetch ImageFetch, progress func(current, total int)) (ImageStats, error) {
	type job struct {
		path string
		url  string
		n    int
	}

	var stats ImageStats
	var jobs []job
	for i, url := range urls {
		name := utils.ImageFileName(episode.Index, totalEpisodes, i+1, len(urls), episode.Title, utils.ImageExt(url), p.restrict)
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			stats.Skipped++
			continue
		}
		jobs = append(jobs, job{path: path, url: url, n: i + 1})
	}

	var done atomic.Int64
	done.Store(int64(stats.Skipped))
	if progress != nil && len(jobs) == 0 {
		progress(len(urls), len(urls))
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, p.workers)
	errorChan := make(chan error, len(jobs))

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := p.saveImage(j.path, j.url, fetch); err != nil {
				errorChan <- fmt.Errorf("image %d of %d: %w", j.n, len(urls), err)
			}
			if progress != nil {
				progress(int(done.Add(1)), len(urls))
			}
		}(j)
	}

	wg.Wait()
	close(errorChan)

	var failures []error
	for err := range errorChan {
		p.logger.Warn("image failed", "episode", episode.Title, "error", err)
		failures = append(failures, err)
	}

	stats.Saved = len(jobs) - len(failures)
	stats.Failed = len(failures)
	if len(failures) > 0 {
		return stats, errors.Join(failures...)
	}
	return stats, nil
}

func (p *Persister) saveImage(path, url string, fetch ImageFetch) error {
	content, err := fetch(url)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, content)
}

// writeFileAtomic stages content beside the target and renames it into
// place, so an interrupted run never leaves a half-written file under
// the final name.
func writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
