package parsers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// Test Plan for the parser contract:
// - Every parser reports its own language
// - CanHandle accepts the language's extensions and rejects others
// - ParseFile reads from disk and propagates IO errors unchanged
// - Invalid UTF-8 input fails with ErrParseFailure
// - Empty input yields an empty Program, not an error

func allParsers() []Parser {
	return []Parser{
		NewRustParser(),
		NewCParser(),
		NewCppParser(),
		NewGoParser(),
		NewPythonParser(),
		NewKotlinParser(),
		NewCSharpParser(),
		NewSwiftParser(),
		NewJavaScriptParser(),
		NewTypeScriptParser(),
		NewScalaParser(),
		NewCrystalParser(),
		NewRubyParser(),
		NewPHPParser(),
	}
}

// typeNamed finds a top-level type declaration by name.
func typeNamed(t *testing.T, program *ast.Program, name string) *ast.TypeDeclaration {
	t.Helper()
	for _, decl := range program.Types() {
		if decl.Name == name {
			return decl
		}
	}
	require.Failf(t, "type not found", "no type declaration named %q", name)
	return nil
}

// fieldNamed finds a field member by name.
func fieldNamed(t *testing.T, decl *ast.TypeDeclaration, name string) *ast.FieldDeclaration {
	t.Helper()
	for _, f := range decl.Fields() {
		if f.Name == name {
			return f
		}
	}
	require.Failf(t, "field not found", "type %q has no field %q", decl.Name, name)
	return nil
}

// callableNamed finds a callable member by name.
func callableNamed(t *testing.T, decl *ast.TypeDeclaration, name string) *ast.CallableDeclaration {
	t.Helper()
	for _, c := range decl.Callables() {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "callable not found", "type %q has no callable %q", decl.Name, name)
	return nil
}

// freeCallableNamed finds a top-level callable by name.
func freeCallableNamed(t *testing.T, program *ast.Program, name string) *ast.CallableDeclaration {
	t.Helper()
	for _, c := range program.Callables() {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "callable not found", "program has no free callable %q", name)
	return nil
}

// Test: Every parser reports the language it was built for
func TestParsers_Language(t *testing.T) {
	t.Parallel()

	want := []lang.Language{
		lang.Rust, lang.C, lang.Cpp, lang.Go, lang.Python,
		lang.Kotlin, lang.CSharp, lang.Swift, lang.JavaScript, lang.TypeScript,
		lang.Scala, lang.Crystal, lang.Ruby, lang.PHP,
	}
	for i, p := range allParsers() {
		assert.Equal(t, want[i], p.Language())
	}
}

// Test: CanHandle matches extensions of the parser's language only
func TestParsers_CanHandle(t *testing.T) {
	t.Parallel()

	rust := NewRustParser()
	assert.True(t, rust.CanHandle("src/main.rs"))
	assert.False(t, rust.CanHandle("src/main.py"))

	ts := NewTypeScriptParser()
	assert.True(t, ts.CanHandle("app.ts"))
	assert.False(t, ts.CanHandle("app.js"))
}

// Test: Invalid UTF-8 fails with ErrParseFailure for every parser
func TestParsers_InvalidUTF8(t *testing.T) {
	t.Parallel()

	bad := string([]byte{0xff, 0xfe, 'f', 'n'})
	for _, p := range allParsers() {
		program, err := p.Parse(bad)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrParseFailure))
		assert.Nil(t, program)
	}
}

// Test: Empty input produces an empty Program without error
func TestParsers_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, p := range allParsers() {
		program, err := p.Parse("")
		require.NoError(t, err)
		require.NotNil(t, program)
		assert.Empty(t, program.Nodes)
		assert.Empty(t, program.Skipped)
	}
}

// Test: ParseFile reads source from disk
func TestParsers_ParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "point.rs")
	src := "pub struct Point {\n    pub x: f64,\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	program, err := NewRustParser().ParseFile(path)
	require.NoError(t, err)
	decl := typeNamed(t, program, "Point")
	assert.True(t, decl.Public)
}

// Test: ParseFile propagates IO errors unchanged
func TestParsers_ParseFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewGoParser().ParseFile(filepath.Join(t.TempDir(), "absent.go"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
