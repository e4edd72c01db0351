package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Test Plan for SwiftParser:
// - Extracts classes with stored properties and methods
// - init blocks become constructors named after the type
// - let properties are immutable, var properties mutable
// - Protocols become callables-only contracts
// - External argument labels drop in favor of internal names
// - Free funcs are static; optional types unwrap

const swiftSource = `import Foundation

class Counter {
    private var count: Int = 0
    let label: String

    init(label: String) {
        self.label = label
    }

    func increment() -> Int {
        count += 1
        return count
    }
}

protocol Describable {
    func describe() -> String
}

func makeCounter(with label: String) -> Counter {
    return Counter(label: label)
}
`

// Test: Stored properties keep mutability and visibility
func TestSwiftParser_Properties(t *testing.T) {
	t.Parallel()

	program, err := NewSwiftParser().Parse(swiftSource)
	require.NoError(t, err)

	counter := typeNamed(t, program, "Counter")
	assert.True(t, counter.Public)
	assert.Equal(t, 3, counter.Position.Line)

	count := fieldNamed(t, counter, "count")
	assert.Equal(t, "int", count.DataType)
	assert.False(t, count.Public)
	assert.True(t, count.Mutable)
	assert.Equal(t, "0", count.Initializer)

	label := fieldNamed(t, counter, "label")
	assert.Equal(t, "String", label.DataType)
	assert.False(t, label.Mutable)
}

// Test: init becomes a constructor named after the class
func TestSwiftParser_Init(t *testing.T) {
	t.Parallel()

	program, err := NewSwiftParser().Parse(swiftSource)
	require.NoError(t, err)

	counter := typeNamed(t, program, "Counter")
	ctor := callableNamed(t, counter, "Counter")
	assert.Equal(t, ast.VoidType, ctor.ReturnType)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "label", ctor.Params[0].Name)
	assert.Equal(t, "String", ctor.Params[0].DataType)
	assert.Contains(t, ctor.RawBody, "self.label = label")
}

// Test: Methods keep mapped return types
func TestSwiftParser_Method(t *testing.T) {
	t.Parallel()

	program, err := NewSwiftParser().Parse(swiftSource)
	require.NoError(t, err)

	counter := typeNamed(t, program, "Counter")
	inc := callableNamed(t, counter, "increment")
	assert.Equal(t, "int", inc.ReturnType)
	assert.False(t, inc.Static)
	assert.True(t, inc.Public)
}

// Test: Protocols hold callables only, all public
func TestSwiftParser_Protocol(t *testing.T) {
	t.Parallel()

	program, err := NewSwiftParser().Parse(swiftSource)
	require.NoError(t, err)

	describable := typeNamed(t, program, "Describable")
	assert.Empty(t, describable.Fields())

	describe := callableNamed(t, describable, "describe")
	assert.Equal(t, "String", describe.ReturnType)
	assert.True(t, describe.Public)
}

// Test: Argument labels drop in favor of internal parameter names
func TestSwiftParser_ArgumentLabels(t *testing.T) {
	t.Parallel()

	program, err := NewSwiftParser().Parse(swiftSource)
	require.NoError(t, err)

	makeCounter := freeCallableNamed(t, program, "makeCounter")
	assert.Equal(t, "Counter", makeCounter.ReturnType)
	assert.True(t, makeCounter.Static)
	require.Len(t, makeCounter.Params, 1)
	assert.Equal(t, "label", makeCounter.Params[0].Name)
}

// Test: Optionals unwrap and dictionaries canonicalize
func TestSwiftParser_Types(t *testing.T) {
	t.Parallel()

	src := `struct Index {
    var entries: [String: Int]
    var title: String?
}
`
	program, err := NewSwiftParser().Parse(src)
	require.NoError(t, err)

	index := typeNamed(t, program, "Index")
	assert.Equal(t, "Map<String, Integer>", fieldNamed(t, index, "entries").DataType)
	assert.Equal(t, "String", fieldNamed(t, index, "title").DataType)
}

// Test: inout parameters are mutable
func TestSwiftParser_Inout(t *testing.T) {
	t.Parallel()

	src := "func bump(value: inout Int) {\n    value += 1\n}\n"
	program, err := NewSwiftParser().Parse(src)
	require.NoError(t, err)

	bump := freeCallableNamed(t, program, "bump")
	require.Len(t, bump.Params, 1)
	assert.True(t, bump.Params[0].Mutable)
	assert.Equal(t, "int", bump.Params[0].DataType)
}
