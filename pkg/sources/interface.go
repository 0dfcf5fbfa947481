package sources

import "tapas-dl/pkg/data"

type Source interface {
	ResolveSeriesID(raw string) string
	GetSeries(id string) (*data.Series, error)
	GetEpisodeContent(episode *data.Episode) (*data.ContentPayload, error)
	GetImage(url string) ([]byte, error)
}
