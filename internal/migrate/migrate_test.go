package migrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseio6668/PolyType-sub001/internal/parsers"
	"github.com/aseio6668/PolyType-sub001/internal/registry"
)

// Test Plan for the migration service:
// - Source file names become PascalCase Java type names
// - MigrateFile writes the output with package declaration and header
// - Unsupported extensions and missing files fail up front
// - MigrateDir discovers recursively, honors ignore patterns, reports
//   per-file status, and keeps going past failing files
// - Progress callbacks see every file with a stable total
// - The content-hash cache fires only on real content changes
// - Watch migrates the initial tree and re-migrates new files

const rustPoint = `pub struct Point {
    pub x: i32,
    pub y: i32,
}
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(registry.New(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// Test: Source file names become PascalCase Java type names
func TestJavaClassName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"point.rs":          "Point",
		"my_module.py":      "MyModule",
		"vector-utils.ts":   "VectorUtils",
		"data.model.kt":     "DataModel",
		"src/nested/app.go": "App",
		"___.rs":            "Generated",
	}
	for path, want := range cases {
		assert.Equal(t, want, javaClassName(path), path)
	}
}

// Test: MigrateFile writes output with package declaration and header
func TestMigrateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "point.rs")
	writeSource(t, src, rustPoint)

	svc := newTestService(t)
	res, err := svc.MigrateFile(context.Background(), src, Options{
		OutputDir:   filepath.Join(dir, "out"),
		PackageName: "demo.geometry",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusMigrated, res.Status)
	assert.Equal(t, filepath.Join(dir, "out", "Point.java"), res.Output)
	assert.Empty(t, res.SkippedSpans)

	data, err := os.ReadFile(res.Output)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "package demo.geometry;\n\n// Generated from Rust source code")
	assert.Contains(t, out, "public class Point {")
}

// Test: Output lands next to the source when no output dir is set
func TestMigrateFile_DefaultOutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "point.rs")
	writeSource(t, src, rustPoint)

	svc := newTestService(t)
	res, err := svc.MigrateFile(context.Background(), src, Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Point.java"), res.Output)
}

// Test: Unsupported extensions and missing files fail up front
func TestMigrateFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newTestService(t)

	_, err := svc.MigrateFile(context.Background(), filepath.Join(dir, "notes.txt"), Options{})
	assert.True(t, errors.Is(err, registry.ErrUnsupportedLanguage))

	_, err = svc.MigrateFile(context.Background(), filepath.Join(dir, "gone.rs"), Options{})
	require.Error(t, err)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = svc.MigrateFile(cancelled, filepath.Join(dir, "gone.rs"), Options{})
	assert.True(t, errors.Is(err, context.Canceled))
}

// Test: Validation gate accepts grammar-clean output
func TestMigrateFile_Validated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "point.rs")
	writeSource(t, src, rustPoint)

	svc := newTestService(t)
	_, err := svc.MigrateFile(context.Background(), src, Options{
		OutputDir:      dir,
		PackageName:    "demo",
		ValidateOutput: true,
	})
	assert.NoError(t, err)
}

// Test: MigrateDir discovers recursively and honors ignore patterns
func TestMigrateDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "a.rs"), rustPoint)
	writeSource(t, filepath.Join(dir, "sub", "b.py"), "class Rectangle:\n    pass\n")
	writeSource(t, filepath.Join(dir, "build", "c.js"), "class Skipped {}\n")
	writeSource(t, filepath.Join(dir, "notes.txt"), "not source\n")

	var seen []string
	var total int
	svc := newTestService(t)
	report, err := svc.MigrateDir(context.Background(), dir, Options{
		OutputDir:      filepath.Join(dir, "out"),
		Recursive:      true,
		IgnorePatterns: []string{"build/**"},
		Progress: func(done, n int, path string) {
			seen = append(seen, path)
			total = n
		},
	})
	require.NoError(t, err)

	assert.Len(t, report.RunID, 36, "run id is a uuid")
	assert.Equal(t, 2, report.Migrated())
	assert.Equal(t, 0, report.Failed())
	assert.FileExists(t, filepath.Join(dir, "out", "A.java"))
	assert.FileExists(t, filepath.Join(dir, "out", "B.java"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "C.java"))

	assert.Equal(t, 2, total)
	assert.Len(t, seen, 2)
}

// Test: Non-recursive discovery stops at the top level
func TestMigrateDir_NonRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "a.rs"), rustPoint)
	writeSource(t, filepath.Join(dir, "sub", "b.py"), "class Rectangle:\n    pass\n")

	svc := newTestService(t)
	report, err := svc.MigrateDir(context.Background(), dir, Options{
		OutputDir: filepath.Join(dir, "out"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Migrated())
	assert.NoFileExists(t, filepath.Join(dir, "out", "B.java"))
}

// Test: A failing file is reported and the batch continues
func TestMigrateDir_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSource(t, filepath.Join(dir, "good.rs"), rustPoint)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.rs"), []byte{0xff, 0xfe, 0x00}, 0o644))

	svc := newTestService(t)
	report, err := svc.MigrateDir(context.Background(), dir, Options{OutputDir: filepath.Join(dir, "out")})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Migrated())
	assert.Equal(t, 1, report.Failed())
	for _, res := range report.Results {
		if res.Status == StatusFailed {
			assert.True(t, errors.Is(res.Err, parsers.ErrParseFailure))
		}
	}
	assert.FileExists(t, filepath.Join(dir, "out", "Good.java"))
}

// Test: The content-hash cache fires only on real content changes
func TestChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.rs")
	writeSource(t, path, rustPoint)

	svc := newTestService(t)
	assert.True(t, svc.changed(path), "first sighting counts as a change")
	assert.False(t, svc.changed(path), "identical content is unchanged")

	writeSource(t, path, rustPoint+"\npub struct Extra { pub n: i32 }\n")
	assert.True(t, svc.changed(path))
	assert.False(t, svc.changed(filepath.Join(dir, "missing.rs")))
}

// Test: Watch migrates the initial tree and re-migrates new files
func TestWatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeSource(t, filepath.Join(dir, "a.rs"), rustPoint)

	svc := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, dir, Options{
			OutputDir: out,
			Recursive: true,
			Debounce:  50 * time.Millisecond,
		})
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "A.java"))
		return err == nil
	}, 5*time.Second, 25*time.Millisecond, "initial pass migrates existing files")

	writeSource(t, filepath.Join(dir, "b.py"), "class Rectangle:\n    pass\n")
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(out, "B.java"))
		return err == nil
	}, 5*time.Second, 25*time.Millisecond, "new files are picked up")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop on context cancellation")
	}
}
