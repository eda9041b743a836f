package rncss

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/yacobolo/rncss/internal/rncss"
	"go.uber.org/zap"
)

// Watch converts all sources once, then reconverts changed stylesheets until
// ctx is cancelled. onResult receives the result of every pass. A change to a
// Sass partial reconverts everything.
func (g *Generator) Watch(ctx context.Context, debounce time.Duration, onResult func(*GenerateResult)) error {
	initial, err := g.Run(ctx)
	if initial != nil && onResult != nil {
		onResult(initial)
	}
	if err != nil && initial == nil {
		return err
	}

	watcher, err := rncss.NewWatcher(g.config.Sources, debounce, g.log)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Start(ctx); err != nil {
		return err
	}

	// Events is closed once ctx is done
	for batch := range watcher.Events() {
		result, err := g.runBatch(ctx, batch)
		if err != nil {
			g.log.Error("Reconversion failed", zap.Error(err))
		}
		if result != nil && onResult != nil {
			onResult(result)
		}
	}
	return nil
}

// runBatch reconverts changed paths, or everything when a partial changed.
// Sources are rescanned so excluded and gitignored files stay unconverted,
// and output ownership is decided across every scanned source.
func (g *Generator) runBatch(ctx context.Context, paths []string) (*GenerateResult, error) {
	for _, p := range paths {
		if rncss.IsSassPartial(p) {
			g.log.Info("Sass partial changed, reconverting all sources", zap.String("file", p))
			return g.Run(ctx)
		}
	}

	scanned, _, err := rncss.ScanSources(g.config.Sources, g.config.Includes, g.config.Excludes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	inScope := make(map[string]bool, len(scanned))
	for _, file := range scanned {
		inScope[file] = true
	}

	var changed []string
	for _, p := range paths {
		if !inScope[filepath.Clean(p)] {
			g.log.Debug("Ignoring change outside sources", zap.String("file", p))
			continue
		}
		changed = append(changed, filepath.Clean(p))
	}
	if len(changed) == 0 {
		return nil, nil
	}

	return summarize(len(changed), g.convert(ctx, changed, g.outputOwners(scanned)))
}

// Watch is the convenience form of Generator.Watch with Dart Sass.
func Watch(ctx context.Context, config Config, debounce time.Duration, log *zap.Logger, onResult func(*GenerateResult)) error {
	g := NewGenerator(config, log, nil)
	defer g.Close()
	return g.Watch(ctx, debounce, onResult)
}
