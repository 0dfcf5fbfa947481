package sources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tapas-dl/pkg/data"
)

const (
	defaultBaseURL = "https://tapas.io"

	// DefaultPageSize is large enough to hold any realistic series in
	// a single metadata request.
	DefaultPageSize = 5000

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"
	referer   = "https://tapas.io/"
)

// seriesQuery fetches everything the downloader needs about a series,
// episode list included, in one round trip.
const seriesQuery = `query SeriesData($seriesId: Int!, $page: Int!, $size: Int!) {
  series(id: $seriesId) {
    id
    title
    creator { name }
    episodes(page: $page, size: $size, sort: OLDEST) {
      entries {
        id
        title
        free
        isAccessible
      }
    }
  }
}`

type Series struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Creator struct {
		Name string `json:"name"`
	} `json:"creator"`
	Episodes struct {
		Entries []Episode `json:"entries"`
	} `json:"episodes"`
}

type Episode struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Free         bool   `json:"free"`
	IsAccessible bool   `json:"isAccessible"`
}

func (s *Series) ToSeries() *data.Series {
	series := &data.Series{
		ID:       strconv.Itoa(s.ID),
		Title:    s.Title,
		Author:   s.Creator.Name,
		Episodes: make([]data.Episode, len(s.Episodes.Entries)),
	}
	for i, entry := range s.Episodes.Entries {
		series.Episodes[i] = data.Episode{
			ID:         entry.ID,
			Title:      entry.Title,
			Accessible: entry.Free || entry.IsAccessible,
			Index:      i + 1,
		}
	}
	return series
}

// Tapas talks to tapas.io: series metadata over its GraphQL endpoint,
// episode content and images over plain GETs. Session cookies, when
// the caller has any, ride on the injected http.Client.
type Tapas struct {
	// BaseURL is the root of the remote site. NewTapas points it at
	// tapas.io.
	BaseURL string

	client   *http.Client
	pageSize int
	logger   *slog.Logger
}

func NewTapas(client *http.Client, pageSize int, logger *slog.Logger) *Tapas {
	if client == nil {
		client = http.DefaultClient
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tapas{
		BaseURL:  defaultBaseURL,
		client:   client,
		pageSize: pageSize,
		logger:   logger.With("component", "tapas"),
	}
}

// ResolveSeriesID extracts the identifier segment from a series URL.
// Anything without a series path segment passes through unchanged;
// resolution never fails and never checks that the series exists.
func (t *Tapas) ResolveSeriesID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, segment := range segments {
		if segment == "series" && i+1 < len(segments) && segments[i+1] != "" {
			return segments[i+1]
		}
	}
	return raw
}

func (t *Tapas) GetSeries(id string) (*data.Series, error) {
	seriesID, err := strconv.Atoi(id)
	if err != nil {
		return nil, &FetchError{ID: id, Err: fmt.Errorf("series id must be numeric: %w", err)}
	}

	payload, err := json.Marshal(map[string]any{
		"query": seriesQuery,
		"variables": map[string]any{
			"seriesId": seriesID,
			"page":     1,
			"size":     t.pageSize,
		},
	})
	if err != nil {
		return nil, &FetchError{ID: id, Err: err}
	}

	req, err := t.newRequest(http.MethodPost, t.BaseURL+"/graphQL", bytes.NewReader(payload))
	if err != nil {
		return nil, &FetchError{ID: id, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &FetchError{ID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{ID: id, Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	var out struct {
		Data struct {
			Series *Series `json:"series"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &FetchError{ID: id, Err: fmt.Errorf("failed to decode series response: %w", err)}
	}
	if out.Data.Series == nil {
		return nil, &FetchError{ID: id, Err: fmt.Errorf("response has no series")}
	}

	series := out.Data.Series.ToSeries()
	// Destination naming keys on the identifier the caller asked for.
	series.ID = id

	if len(series.Episodes) >= t.pageSize {
		t.logger.Warn("episode list filled an entire page, series may be truncated",
			"series", id, "episodes", len(series.Episodes), "pageSize", t.pageSize)
	}

	return series, nil
}

func (t *Tapas) GetEpisodeContent(episode *data.Episode) (*data.ContentPayload, error) {
	episodeURL := fmt.Sprintf("%s/episode/%d", t.BaseURL, episode.ID)

	req, err := t.newRequest(http.MethodGet, episodeURL, nil)
	if err != nil {
		return nil, &FetchError{ID: strconv.Itoa(episode.ID), Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &FetchError{ID: strconv.Itoa(episode.ID), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{ID: strconv.Itoa(episode.ID), Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	return Classify(resp.Body)
}

func (t *Tapas) GetImage(url string) ([]byte, error) {
	req, err := t.newRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{ID: url, Err: err}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &FetchError{ID: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{ID: url, Err: fmt.Errorf("bad status: %s", resp.Status)}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{ID: url, Err: fmt.Errorf("failed to read image: %w", err)}
	}
	return content, nil
}

// newRequest stamps the browser headers tapas.io expects on every call.
func (t *Tapas) newRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)
	return req, nil
}
