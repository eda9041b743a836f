package rncss

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bep/godartsass/v2"
	"go.uber.org/zap"
)

// SassCompiler compiles a Sass source file to plain CSS.
type SassCompiler interface {
	Compile(ctx context.Context, path string) (string, error)
}

// IsSassFile reports whether path is a Sass source by extension.
func IsSassFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".scss", ".sass":
		return true
	}
	return false
}

// DartSass compiles Sass through the embedded Dart Sass protocol.
// The transpiler process is started lazily on first use and shared;
// concurrent Compile calls are multiplexed over it.
type DartSass struct {
	binary string
	log    *zap.Logger

	once       sync.Once
	transpiler *godartsass.Transpiler
	startErr   error
}

// NewDartSass creates a compiler using the given sass binary ("" for "sass" on PATH).
func NewDartSass(binary string, log *zap.Logger) *DartSass {
	if log == nil {
		log = zap.NewNop()
	}
	return &DartSass{binary: binary, log: log.Named("sass")}
}

func (d *DartSass) start() error {
	d.once.Do(func() {
		d.transpiler, d.startErr = godartsass.Start(godartsass.Options{
			DartSassEmbeddedFilename: d.binary,
		})
		if d.startErr != nil {
			d.startErr = fmt.Errorf("start dart sass: %w", d.startErr)
		}
	})
	return d.startErr
}

// Compile reads path and compiles it to compressed CSS without source maps.
func (d *DartSass) Compile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := d.start(); err != nil {
		return "", err
	}

	// #nosec G304 - path comes from the scanned source set
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}

	syntax := godartsass.SourceSyntaxSCSS
	if strings.EqualFold(filepath.Ext(path), ".sass") {
		syntax = godartsass.SourceSyntaxSASS
	}

	d.log.Debug("Compiling Sass", zap.String("file", path))
	res, err := d.transpiler.Execute(godartsass.Args{
		Source:       string(src),
		URL:          "file://" + filepath.ToSlash(mustAbs(path)),
		OutputStyle:  godartsass.OutputStyleCompressed,
		SourceSyntax: syntax,
		IncludePaths: []string{filepath.Dir(path)},
	})
	if err != nil {
		return "", &ParseError{File: path, Err: err}
	}
	return res.CSS, nil
}

// Close stops the transpiler process if it was started.
func (d *DartSass) Close() error {
	if d.transpiler == nil {
		return nil
	}
	return d.transpiler.Close()
}

// mustAbs returns the absolute form of path, or path itself if that fails.
func mustAbs(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
