package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Test Plan for CppParser:
// - Extracts classes with access-section visibility tracking
// - Constructors are recognized without a return type
// - Methods keep mapped return types and bodies
// - Declarations without bodies (prototypes) still extract
// - struct members default public, class members private
// - STL containers canonicalize to boxed Java generics
// - Free functions extract with pointer and reference parameters

const cppSource = `#include <vector>
#include <string>

class Inventory {
public:
    Inventory(int capacity) : capacity(capacity) {}

    int total() const {
        return items.size();
    }

    static int version();

private:
    int capacity;
    std::vector<int> items;
};

struct Pair {
    int first;
    int second;
};

int add(int a, int b) {
    return a + b;
}
`

// Test: Access sections control member visibility
func TestCppParser_AccessSections(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	inv := typeNamed(t, program, "Inventory")
	assert.Equal(t, 4, inv.Position.Line)

	capacity := fieldNamed(t, inv, "capacity")
	assert.Equal(t, "int", capacity.DataType)
	assert.False(t, capacity.Public)

	total := callableNamed(t, inv, "total")
	assert.True(t, total.Public)
	assert.Equal(t, "int", total.ReturnType)
	assert.Contains(t, total.RawBody, "return items.size();")
}

// Test: Constructors extract without a return type
func TestCppParser_Constructor(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	inv := typeNamed(t, program, "Inventory")
	ctor := callableNamed(t, inv, "Inventory")
	assert.Equal(t, ast.VoidType, ctor.ReturnType)
	assert.True(t, ctor.Public)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "capacity", ctor.Params[0].Name)
}

// Test: Method prototypes without bodies still extract
func TestCppParser_Prototype(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	inv := typeNamed(t, program, "Inventory")
	version := callableNamed(t, inv, "version")
	assert.Equal(t, "int", version.ReturnType)
	assert.True(t, version.Static)
	assert.Empty(t, version.RawBody)
}

// Test: STL containers canonicalize to boxed generics
func TestCppParser_Containers(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	inv := typeNamed(t, program, "Inventory")
	assert.Equal(t, "List<Integer>", fieldNamed(t, inv, "items").DataType)
}

// Test: struct members default public
func TestCppParser_StructDefaultsPublic(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	pair := typeNamed(t, program, "Pair")
	assert.True(t, fieldNamed(t, pair, "first").Public)
	assert.True(t, fieldNamed(t, pair, "second").Public)
}

// Test: Free functions extract and class methods never leak out
func TestCppParser_FreeFunction(t *testing.T) {
	t.Parallel()

	program, err := NewCppParser().Parse(cppSource)
	require.NoError(t, err)

	add := freeCallableNamed(t, program, "add")
	assert.Equal(t, "int", add.ReturnType)
	assert.True(t, add.Static)
	require.Len(t, add.Params, 2)

	for _, c := range program.Callables() {
		assert.NotEqual(t, "total", c.Name)
	}
}

// Test: Reference and map types canonicalize
func TestCppParser_MapTypes(t *testing.T) {
	t.Parallel()

	src := `class Index {
public:
    std::map<std::string, int> lookup;

    void insert(const std::string& key, int value) {
    }
};
`
	program, err := NewCppParser().Parse(src)
	require.NoError(t, err)

	index := typeNamed(t, program, "Index")
	assert.Equal(t, "Map<String, Integer>", fieldNamed(t, index, "lookup").DataType)

	insert := callableNamed(t, index, "insert")
	require.Len(t, insert.Params, 2)
	assert.Equal(t, "String", insert.Params[0].DataType)
	assert.Equal(t, "key", insert.Params[0].Name)
}
