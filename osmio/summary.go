package osmio

import (
	"time"

	"github.com/hauke96/sigolo/v2"
	"github.com/hauke96/vadeenosm"
)

// ImportSummary logs phase timing around an Open call and reports simple
// counts, the way a batch-import tool would: a start message, then a final
// duration once the read completes.
type ImportSummary struct {
	Path      string
	Nodes     int
	Ways      int
	Relations int
	Duration  time.Duration
}

// Import opens path, logging progress through sigolo, and returns both the
// decoded map and a summary of what was read.
func Import(path string) (*vadeenosm.Osm, *ImportSummary, error) {
	sigolo.Debugf("Start processing OSM data file %s", path)
	start := time.Now()

	osm, err := Open(path)
	if err != nil {
		return nil, nil, err
	}

	duration := time.Since(start)
	sigolo.Infof("Done processing OSM data in %s", duration)

	return osm, &ImportSummary{
		Path:      path,
		Nodes:     len(osm.Nodes),
		Ways:      len(osm.Ways),
		Relations: len(osm.Relations),
		Duration:  duration,
	}, nil
}
