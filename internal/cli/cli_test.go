package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the CLI:
// - languages lists every source language with its extensions
// - version prints the build identity
// - validate reports valid and invalid Java files
// - migrate writes Java output for a source tree
//
// Commands share the package-level root command, so these tests run
// sequentially.

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// Test: languages lists every source language with its extensions
func TestLanguagesCommand(t *testing.T) {
	out, err := execute(t, "languages")
	require.NoError(t, err)
	for _, want := range []string{"Rust", ".rs", "Kotlin", ".kt", "TypeScript", ".tsx", "Go", ".go", "Scala", ".scala", "Ruby", ".rb", "PHP", ".php", "Crystal", ".cr"} {
		assert.Contains(t, out, want)
	}
}

// Test: version prints the build identity
func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "PolyType")
	assert.Contains(t, out, "Git commit:")
}

// Test: validate reports valid and invalid Java files
func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "Good.java")
	bad := filepath.Join(dir, "Bad.java")
	require.NoError(t, os.WriteFile(good, []byte("class Good {}\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("class Bad { int = ; }\n"), 0o644))

	out, err := execute(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")

	out, err = execute(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "✗")
	assert.Contains(t, err.Error(), "1 of 2 files invalid")
}

// Test: migrate writes Java output for a source tree
func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	src := "pub struct Point {\n    pub x: i32,\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "point.rs"), []byte(src), 0o644))

	_, err := execute(t, "migrate", dir, "-o", outDir, "-p", "demo", "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "Point.java"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package demo;")
	assert.Contains(t, string(data), "public class Point {")
}
