package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Test Plan for CParser:
// - Extracts plain and typedef'd struct definitions
// - typedef aliases win over the struct tag name
// - Struct members are public and mutable
// - Function definitions extract with bodies, prototypes without
// - char* parameters map to String; array declarators to arrays
// - Preprocessor directives never produce declarations

const cSource = `#include <stdio.h>

typedef struct point {
    double x;
    double y;
} Point;

struct buffer {
    char *name;
    int size;
};

int add(int a, int b) {
    return a + b;
}

void log_value(const char *label, int value);
`

// Test: typedef alias names the struct
func TestCParser_TypedefStruct(t *testing.T) {
	t.Parallel()

	program, err := NewCParser().Parse(cSource)
	require.NoError(t, err)

	point := typeNamed(t, program, "Point")
	assert.True(t, point.Public)
	assert.Equal(t, 3, point.Position.Line)
	require.Len(t, point.Fields(), 2)
	assert.Equal(t, "double", fieldNamed(t, point, "x").DataType)
}

// Test: Plain struct keeps its tag name and maps pointer members
func TestCParser_PlainStruct(t *testing.T) {
	t.Parallel()

	program, err := NewCParser().Parse(cSource)
	require.NoError(t, err)

	buffer := typeNamed(t, program, "buffer")
	name := fieldNamed(t, buffer, "name")
	assert.Equal(t, "String", name.DataType)
	assert.True(t, name.Public)
	assert.True(t, name.Mutable)
	assert.Equal(t, "int", fieldNamed(t, buffer, "size").DataType)
}

// Test: Function definitions carry bodies
func TestCParser_FunctionDefinition(t *testing.T) {
	t.Parallel()

	program, err := NewCParser().Parse(cSource)
	require.NoError(t, err)

	add := freeCallableNamed(t, program, "add")
	assert.Equal(t, "int", add.ReturnType)
	assert.True(t, add.Static)
	assert.Contains(t, add.RawBody, "return a + b;")
	require.Len(t, add.Params, 2)
	assert.Equal(t, "a", add.Params[0].Name)
}

// Test: Prototypes extract without bodies
func TestCParser_Prototype(t *testing.T) {
	t.Parallel()

	program, err := NewCParser().Parse(cSource)
	require.NoError(t, err)

	logValue := freeCallableNamed(t, program, "log_value")
	assert.Equal(t, ast.VoidType, logValue.ReturnType)
	assert.Empty(t, logValue.RawBody)
	require.Len(t, logValue.Params, 2)
	assert.Equal(t, "String", logValue.Params[0].DataType)
	assert.Equal(t, "label", logValue.Params[0].Name)
}

// Test: void parameter lists are empty
func TestCParser_VoidParams(t *testing.T) {
	t.Parallel()

	src := "int now(void) {\n    return 0;\n}\n"
	program, err := NewCParser().Parse(src)
	require.NoError(t, err)

	now := freeCallableNamed(t, program, "now")
	assert.Empty(t, now.Params)
}

// Test: Array declarators move to the type
func TestCParser_ArrayMembers(t *testing.T) {
	t.Parallel()

	src := "struct grid {\n    int cells[64];\n};\n"
	program, err := NewCParser().Parse(src)
	require.NoError(t, err)

	grid := typeNamed(t, program, "grid")
	cells := fieldNamed(t, grid, "cells")
	assert.Equal(t, "int[]", cells.DataType)
}
