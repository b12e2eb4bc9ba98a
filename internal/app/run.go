package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vk/footprintgen/internal/driver"
	"github.com/vk/footprintgen/internal/fsutil"
)

// Run prepares the output directory, processes every definition file and
// prints a summary. The report is returned even when the run failed.
func (a *App) Run(ctx context.Context) (*driver.Report, error) {
	ctx = a.context(ctx)
	a.logger.Debug("App.Run method started.")

	if !a.config.DryRun {
		if err := a.prepareOutput(); err != nil {
			return nil, err
		}
	}

	a.logger.Info("Generating footprints.", "definitions", a.config.DefinitionsDir, "generators", len(a.registry.ManifestRegistry))
	report, err := driver.New(a.registry).Run(ctx, driver.Config{
		DefinitionsDir: a.config.DefinitionsDir,
		OutputDir:      a.config.OutputDir,
		FailFast:       a.config.FailFast,
		DryRun:         a.config.DryRun,
	})
	if report != nil {
		writeSummary(a.outW, report, a.config.DryRun)
	}
	if driver.IsKind(err, driver.KindGeneratorNotFound) {
		a.logger.Warn("Some definitions name an unknown generator.", "known", strings.Join(a.registry.IDs(), ", "))
	}

	a.logger.Debug("App.Run method finished.")
	return report, err
}

// prepareOutput replaces the output directory with a copy of the constants
// tree when one is configured.
func (a *App) prepareOutput() error {
	if a.config.ConstantsDir == "" {
		return nil
	}

	a.logger.Warn("Replacing output directory with constants.", "output", a.config.OutputDir, "constants", a.config.ConstantsDir)
	if err := os.RemoveAll(a.config.OutputDir); err != nil {
		return fmt.Errorf("failed to clear output directory: %w", err)
	}
	if err := fsutil.CopyTree(a.config.ConstantsDir, a.config.OutputDir); err != nil {
		return fmt.Errorf("failed to copy constants: %w", err)
	}
	return nil
}
