package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Test Plan for RustParser:
// - Extracts struct declarations with field visibility and mapped types
// - Attaches impl-block methods to the declared struct
// - Distinguishes instance methods (self receiver) from associated fns
// - Extracts trait declarations as callables-only contracts
// - Extracts free fns with parameters and return types
// - Records impl blocks for undeclared types on the skip list
// - Recovers line numbers after comment and use stripping
// - Lifetime annotations stay ordinary text while scanning
// - Declarations keep source order within each category

const rustSource = `use std::collections::HashMap;

pub struct Point {
    pub x: f64,
    y: f64,
}

impl Point {
    pub fn norm(&self) -> f64 {
        (self.x * self.x + self.y * self.y).sqrt()
    }

    pub fn origin() -> Point {
        Point { x: 0.0, y: 0.0 }
    }
}

pub trait Shape {
    fn area(&self) -> f64;
    fn label(&self) -> String;
}

pub fn distance(a: Point, b: Point) -> f64 {
    0.0
}
`

// Test: Struct fields keep visibility and canonical types
func TestRustParser_Struct(t *testing.T) {
	t.Parallel()

	program, err := NewRustParser().Parse(rustSource)
	require.NoError(t, err)

	point := typeNamed(t, program, "Point")
	assert.True(t, point.Public)
	assert.Equal(t, 3, point.Position.Line)

	x := fieldNamed(t, point, "x")
	assert.Equal(t, "double", x.DataType)
	assert.True(t, x.Public)

	y := fieldNamed(t, point, "y")
	assert.Equal(t, "double", y.DataType)
	assert.False(t, y.Public)
}

// Test: impl methods attach to the struct; self marks instance methods
func TestRustParser_ImplMethods(t *testing.T) {
	t.Parallel()

	program, err := NewRustParser().Parse(rustSource)
	require.NoError(t, err)

	point := typeNamed(t, program, "Point")

	norm := callableNamed(t, point, "norm")
	assert.Equal(t, "double", norm.ReturnType)
	assert.False(t, norm.Static)
	assert.True(t, norm.Public)
	assert.NotEmpty(t, norm.RawBody)

	origin := callableNamed(t, point, "origin")
	assert.Equal(t, "Point", origin.ReturnType)
	assert.True(t, origin.Static)
}

// Test: Trait declarations become callables-only contracts
func TestRustParser_Trait(t *testing.T) {
	t.Parallel()

	program, err := NewRustParser().Parse(rustSource)
	require.NoError(t, err)

	shape := typeNamed(t, program, "Shape")
	assert.Empty(t, shape.Fields())
	require.Len(t, shape.Callables(), 2)

	area := callableNamed(t, shape, "area")
	assert.Equal(t, "double", area.ReturnType)
	assert.True(t, area.Public)
	assert.False(t, area.Static)

	label := callableNamed(t, shape, "label")
	assert.Equal(t, "String", label.ReturnType)
}

// Test: Free fns keep parameters and are static
func TestRustParser_FreeFn(t *testing.T) {
	t.Parallel()

	program, err := NewRustParser().Parse(rustSource)
	require.NoError(t, err)

	distance := freeCallableNamed(t, program, "distance")
	assert.Equal(t, "double", distance.ReturnType)
	assert.True(t, distance.Static)
	assert.True(t, distance.Public)
	require.Len(t, distance.Params, 2)
	assert.Equal(t, "a", distance.Params[0].Name)
	assert.Equal(t, "Point", distance.Params[0].DataType)

	// Methods inside impl blocks must not leak out as free fns.
	for _, c := range program.Callables() {
		assert.NotEqual(t, "norm", c.Name)
		assert.NotEqual(t, "origin", c.Name)
	}
}

// Test: impl for an undeclared type is skipped, not invented
func TestRustParser_ImplUndeclared(t *testing.T) {
	t.Parallel()

	src := "impl Mystery {\n    pub fn poke(&self) {}\n}\n"
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)

	assert.Empty(t, program.Types())
	require.Len(t, program.Skipped, 1)
	assert.Equal(t, 1, program.Skipped[0].Line)
	assert.Contains(t, program.Skipped[0].Reason, "Mystery")
}

// Test: Container types map to boxed generics
func TestRustParser_ContainerTypes(t *testing.T) {
	t.Parallel()

	src := `pub struct Store {
    pub items: Vec<i32>,
    pub index: HashMap<String, u64>,
}
`
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)

	store := typeNamed(t, program, "Store")
	assert.Equal(t, "List<Integer>", fieldNamed(t, store, "items").DataType)
	assert.Equal(t, "Map<String, Long>", fieldNamed(t, store, "index").DataType)
}

// Test: mut parameters survive as mutable
func TestRustParser_MutParams(t *testing.T) {
	t.Parallel()

	src := "pub fn fill(mut buf: Vec<u8>, n: usize) {}\n"
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)

	fill := freeCallableNamed(t, program, "fill")
	require.Len(t, fill.Params, 2)
	assert.True(t, fill.Params[0].Mutable)
	assert.False(t, fill.Params[1].Mutable)
}

// Test: Lifetime annotations do not derail field or parameter scanning
func TestRustParser_Lifetimes(t *testing.T) {
	t.Parallel()

	src := `pub struct Holder<'a> {
    pub name: &'a str,
    pub count: i32,
}

pub fn first<'a>(name: &'a str) -> &'a str {
    name
}
`
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)
	assert.Empty(t, program.Skipped)

	holder := typeNamed(t, program, "Holder")
	require.Len(t, holder.Fields(), 2)
	assert.Equal(t, "String", fieldNamed(t, holder, "name").DataType)
	assert.Equal(t, "int", fieldNamed(t, holder, "count").DataType)

	first := freeCallableNamed(t, program, "first")
	assert.Equal(t, "String", first.ReturnType)
	require.Len(t, first.Params, 1)
	assert.Equal(t, "name", first.Params[0].Name)
	assert.Equal(t, "String", first.Params[0].DataType)
}

// Test: Declarations keep source order within each category
func TestRustParser_DeclarationOrder(t *testing.T) {
	t.Parallel()

	src := `pub struct Alpha {
    pub first: i32,
    pub second: String,
    pub third: bool,
}

pub fn between() {}

pub struct Beta {
    pub value: i32,
}

pub fn after() {}
`
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)

	// Types come first in source order, then free fns in source order.
	require.Len(t, program.Nodes, 4)
	alpha, ok := program.Nodes[0].(*ast.TypeDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Alpha", alpha.Name)
	beta, ok := program.Nodes[1].(*ast.TypeDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Beta", beta.Name)
	between, ok := program.Nodes[2].(*ast.CallableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "between", between.Name)
	after, ok := program.Nodes[3].(*ast.CallableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "after", after.Name)

	fields := alpha.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, "first", fields[0].Name)
	assert.Equal(t, "second", fields[1].Name)
	assert.Equal(t, "third", fields[2].Name)
}

// Test: Trait method with default body keeps void return
func TestRustParser_TraitDefaultBody(t *testing.T) {
	t.Parallel()

	src := "pub trait Noisy {\n    fn speak(&self) {\n        println!(\"hi\");\n    }\n}\n"
	program, err := NewRustParser().Parse(src)
	require.NoError(t, err)

	noisy := typeNamed(t, program, "Noisy")
	speak := callableNamed(t, noisy, "speak")
	assert.Equal(t, ast.VoidType, speak.ReturnType)
	assert.NotEmpty(t, speak.RawBody)
}
