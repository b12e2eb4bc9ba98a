package registry

import (
	"context"
	"fmt"

	"github.com/vk/footprintgen/internal/ctxlog"
	"github.com/vk/footprintgen/internal/manifest"
)

// LoadManifests loads every generator manifest under generatorsPath.
func (r *Registry) LoadManifests(ctx context.Context, generatorsPath string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading manifests from generators path...", "path", generatorsPath)

	manifests, err := manifest.Load(ctx, generatorsPath)
	if err != nil {
		return fmt.Errorf("failed to load generator manifests: %w", err)
	}

	for _, m := range manifests {
		if err := r.AddManifest(m); err != nil {
			return err
		}
	}

	logger.Info("Registry loaded successfully.", "generators_loaded", len(r.ManifestRegistry))
	return nil
}
