package rncss

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"

	"github.com/yacobolo/rncss/internal/rncss"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator converts stylesheet files into style modules
type Generator struct {
	config      Config
	log         *zap.Logger
	transformer *rncss.Transformer
	sass        SassCompiler
}

// NewGenerator creates a generator. A nil sass compiler uses Dart Sass
// (config.SassBinary, or sass on PATH).
func NewGenerator(config Config, log *zap.Logger, sass SassCompiler) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if sass == nil {
		sass = rncss.NewDartSass(config.SassBinary, log)
	}
	return &Generator{
		config:      config,
		log:         log.Named("generate"),
		transformer: rncss.NewTransformer(log),
		sass:        sass,
	}
}

// Generate is the main entry point: convert every stylesheet found in config.Sources.
func Generate(ctx context.Context, config Config, log *zap.Logger) (*GenerateResult, error) {
	g := NewGenerator(config, log, nil)
	defer g.Close()
	return g.Run(ctx)
}

// Close releases the Sass compiler if it holds resources.
func (g *Generator) Close() error {
	if c, ok := g.sass.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Run scans, converts and writes all sources. A failing file does not stop
// the others; its error is recorded in the result. An error is returned when
// scanning fails or when files failed and none converted.
func (g *Generator) Run(ctx context.Context) (*GenerateResult, error) {
	// 1. Scan sources
	files, stats, err := rncss.ScanSources(g.config.Sources, g.config.Includes, g.config.Excludes)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	g.log.Debug("Scanned sources",
		zap.Int("found", len(files)),
		zap.Int("discovered", stats.FilesDiscovered),
		zap.Int("skipped", stats.FilesSkipped))

	// 2. Convert in parallel
	results := g.ConvertFiles(ctx, files)

	// 3. Collect stats
	result, errs := summarize(len(files), results)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if result.FilesConverted == 0 && errs != nil {
		return result, fmt.Errorf("no stylesheet converted: %w", errs)
	}
	return result, nil
}

// summarize totals per-file results. The returned error combines every file failure.
func summarize(scanned int, files []FileResult) (*GenerateResult, error) {
	result := &GenerateResult{
		FilesScanned: scanned,
		Files:        files,
	}
	var errs error
	for _, r := range files {
		if r.Err != nil {
			fileErr := fmt.Errorf("%s: %w", r.Source, r.Err)
			result.Errors = append(result.Errors, fileErr)
			errs = multierr.Append(errs, fileErr)
			continue
		}
		result.FilesConverted++
		result.SelectorsGenerated += r.Selectors
	}
	return result, errs
}

// ConvertFiles converts files concurrently and returns one result per file,
// sorted by source path. Files that would write the same output are reported
// as errors instead of overwriting each other.
func (g *Generator) ConvertFiles(ctx context.Context, files []string) []FileResult {
	return g.convert(ctx, files, g.outputOwners(files))
}

// outputOwners maps each output path to the first source, in sorted order, that writes it.
func (g *Generator) outputOwners(files []string) map[string]string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	owners := make(map[string]string, len(sorted))
	for _, file := range sorted {
		out := rncss.OutputPath(file, g.config.OutputDir, g.format())
		if _, taken := owners[out]; !taken {
			owners[out] = file
		}
	}
	return owners
}

// convert converts files whose output is owned by them in owners.
func (g *Generator) convert(ctx context.Context, files []string, owners map[string]string) []FileResult {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	results := make([]FileResult, len(sorted))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency())

	for i, file := range sorted {
		out := rncss.OutputPath(file, g.config.OutputDir, g.format())
		if owner := owners[out]; owner != "" && owner != file {
			results[i] = FileResult{
				Source: file,
				Output: out,
				Err:    fmt.Errorf("output %s is already generated from %s", out, owner),
			}
			continue
		}

		eg.Go(func() error {
			results[i] = g.ConvertFile(ctx, file)
			return nil
		})
	}

	// Workers never return errors; failures live in results
	_ = eg.Wait()
	return results
}

// ConvertFile converts a single stylesheet and writes its module.
func (g *Generator) ConvertFile(ctx context.Context, path string) FileResult {
	out := rncss.OutputPath(path, g.config.OutputDir, g.format())
	fr := FileResult{Source: path, Output: out}

	if err := ctx.Err(); err != nil {
		fr.Err = err
		return fr
	}

	src, err := g.readSource(ctx, path)
	if err != nil {
		fr.Err = err
		g.log.Error("Failed to read stylesheet", zap.String("file", path), zap.Error(err))
		return fr
	}

	result, err := g.transformer.Transform(src, g.config.TransformOptions())
	if err != nil {
		fr.Err = err
		g.log.Error("Failed to convert stylesheet", zap.String("file", path), zap.Error(err))
		return fr
	}

	if err := rncss.WriteStyleFile(out, result, g.writeOptions()); err != nil {
		fr.Err = err
		g.log.Error("Failed to write style module", zap.String("file", out), zap.Error(err))
		return fr
	}

	fr.Selectors = len(result)
	g.log.Debug("Converted stylesheet",
		zap.String("file", path),
		zap.String("output", out),
		zap.Int("selectors", fr.Selectors))
	return fr
}

// readSource returns plain CSS for path, compiling Sass sources first.
func (g *Generator) readSource(ctx context.Context, path string) (string, error) {
	if rncss.IsSassFile(path) {
		return g.sass.Compile(ctx, path)
	}

	// #nosec G304 - path comes from the scanned source set
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func (g *Generator) format() OutputFormat {
	if g.config.Format == "" {
		return FormatJS
	}
	return g.config.Format
}

func (g *Generator) writeOptions() rncss.WriteOptions {
	return rncss.WriteOptions{
		Format:        g.format(),
		Pretty:        g.config.Pretty,
		LiteralObject: g.config.LiteralObject,
	}
}

func (g *Generator) concurrency() int {
	if g.config.Concurrency > 0 {
		return g.config.Concurrency
	}
	return runtime.NumCPU()
}
