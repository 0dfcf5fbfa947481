package integrations

// Exporter packages an ingested series directory into another format.
type Exporter interface {
	Export(seriesDir string) (string, error)
}
