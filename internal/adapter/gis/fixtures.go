package gis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/climate-ops-service/internal/domain"
)

// FixtureSource serves layers from GeoJSON files on disk, one file per layer
// named <layer>.json. Used in development and demos instead of the live WFS
// endpoint. A missing fixture is that layer's empty-result case, not an
// error, so partial fixture sets still analyze cleanly.
type FixtureSource struct {
	dir    string
	logger *slog.Logger
}

// NewFixtureSource creates a fixture-backed feature source rooted at dir.
func NewFixtureSource(dir string, logger *slog.Logger) *FixtureSource {
	return &FixtureSource{dir: dir, logger: logger}
}

// QueryLayer reads the layer's fixture file and truncates to maxFeatures.
func (s *FixtureSource) QueryLayer(_ context.Context, layer string, maxFeatures int) (domain.FeatureCollection, error) {
	path := filepath.Join(s.dir, layer+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no fixture for layer", "layer", layer)
		return domain.FeatureCollection{}, nil
	}
	if err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("read fixture %s: %w", path, err)
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return domain.FeatureCollection{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	if maxFeatures > 0 && len(fc.Features) > maxFeatures {
		fc.Features = fc.Features[:maxFeatures]
	}
	return fc, nil
}
