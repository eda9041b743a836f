package rncss

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSassFile(t *testing.T) {
	assert.True(t, IsSassFile("main.scss"))
	assert.True(t, IsSassFile("main.SASS"))
	assert.False(t, IsSassFile("main.css"))
	assert.False(t, IsSassFile("scss"))
}

func TestDartSass_CancelledContext(t *testing.T) {
	d := NewDartSass("", nil)
	defer d.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Compile(ctx, "main.scss")
	require.ErrorIs(t, err, context.Canceled)
}

func TestDartSass_CloseWithoutStart(t *testing.T) {
	assert.NoError(t, NewDartSass("", nil).Close())
}

func TestDartSass_Compile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"_vars.scss": "$gap: 4px;",
		"main.scss":  "@use 'vars';\n.card { margin: vars.$gap; .title { font-size: 12px; } }",
	})

	d := startDartSass(t)

	css, err := d.Compile(context.Background(), filepath.Join(dir, "main.scss"))
	require.NoError(t, err)

	result, err := Transform(css, Options{})
	require.NoError(t, err)
	assert.Equal(t, NumberValue(4), result["card"]["marginTop"])
	assert.Equal(t, NumberValue(12), result["card title"]["fontSize"])
}

func TestDartSass_CompileError(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"broken.scss": ".card { color: $missing; }"})

	d := startDartSass(t)

	_, err := d.Compile(context.Background(), filepath.Join(dir, "broken.scss"))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, filepath.Join(dir, "broken.scss"), pe.File)
}

func TestDartSass_CompileConcurrent(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for i := range 8 {
		files[fmt.Sprintf("c%d.scss", i)] = fmt.Sprintf("$w: %dpx; .c%d { width: $w; }", i+1, i)
	}
	writeFiles(t, dir, files)

	d := startDartSass(t)

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = d.Compile(context.Background(), filepath.Join(dir, fmt.Sprintf("c%d.scss", i)))
		}()
	}
	wg.Wait()

	for i := range 8 {
		require.NoError(t, errs[i])
		assert.Contains(t, results[i], fmt.Sprintf(".c%d{width:%dpx}", i, i+1))
	}
}

// startDartSass returns a started compiler, skipping when no embedded-capable sass is installed.
func startDartSass(t *testing.T) *DartSass {
	t.Helper()
	if _, err := exec.LookPath("sass"); err != nil {
		t.Skip("dart sass not installed")
	}
	d := NewDartSass("", nil)
	if err := d.start(); err != nil {
		t.Skipf("dart sass unavailable: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}
