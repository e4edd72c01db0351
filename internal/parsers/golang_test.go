package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Test Plan for GoParser:
// - Extracts struct declarations with grouped field names
// - Casing determines visibility for types, fields, and funcs
// - Receiver methods attach to the struct declared in the same file
// - Interface declarations become callables-only contracts
// - Multi-value results collapse to the first value; trailing error drops
// - Import blocks and package clauses do not produce declarations

const goSource = `package geometry

import (
	"fmt"
)

type Point struct {
	X, Y float64
	label string
}

type Shape interface {
	Area() float64
	Describe() (string, error)
}

func (p *Point) Scale(factor float64) {
	p.X *= factor
	p.Y *= factor
}

func NewPoint(x float64, y float64) (*Point, error) {
	return &Point{X: x, Y: y}, nil
}
`

// Test: Struct fields distribute grouped names and map types
func TestGoParser_Struct(t *testing.T) {
	t.Parallel()

	program, err := NewGoParser().Parse(goSource)
	require.NoError(t, err)

	point := typeNamed(t, program, "Point")
	assert.True(t, point.Public)
	assert.Equal(t, 7, point.Position.Line)
	require.Len(t, point.Fields(), 3)

	x := fieldNamed(t, point, "X")
	assert.Equal(t, "double", x.DataType)
	assert.True(t, x.Public)
	assert.Equal(t, "double", fieldNamed(t, point, "Y").DataType)

	label := fieldNamed(t, point, "label")
	assert.Equal(t, "String", label.DataType)
	assert.False(t, label.Public)
}

// Test: Receiver methods attach to their struct
func TestGoParser_ReceiverMethod(t *testing.T) {
	t.Parallel()

	program, err := NewGoParser().Parse(goSource)
	require.NoError(t, err)

	point := typeNamed(t, program, "Point")
	scale := callableNamed(t, point, "Scale")
	assert.Equal(t, ast.VoidType, scale.ReturnType)
	assert.True(t, scale.Public)
	assert.False(t, scale.Static)
	require.Len(t, scale.Params, 1)
	assert.Equal(t, "factor", scale.Params[0].Name)
	assert.Equal(t, "double", scale.Params[0].DataType)

	for _, c := range program.Callables() {
		assert.NotEqual(t, "Scale", c.Name)
	}
}

// Test: Interface methods collapse (T, error) results to T
func TestGoParser_Interface(t *testing.T) {
	t.Parallel()

	program, err := NewGoParser().Parse(goSource)
	require.NoError(t, err)

	shape := typeNamed(t, program, "Shape")
	assert.Empty(t, shape.Fields())

	area := callableNamed(t, shape, "Area")
	assert.Equal(t, "double", area.ReturnType)
	assert.True(t, area.Public)

	describe := callableNamed(t, shape, "Describe")
	assert.Equal(t, "String", describe.ReturnType)
}

// Test: Free funcs are static; pointer results lose their star
func TestGoParser_FreeFunc(t *testing.T) {
	t.Parallel()

	program, err := NewGoParser().Parse(goSource)
	require.NoError(t, err)

	newPoint := freeCallableNamed(t, program, "NewPoint")
	assert.Equal(t, "Point", newPoint.ReturnType)
	assert.True(t, newPoint.Static)
	assert.True(t, newPoint.Public)
	require.Len(t, newPoint.Params, 2)
}

// Test: Channel and map types canonicalize to Java collections
func TestGoParser_ChannelAndMap(t *testing.T) {
	t.Parallel()

	src := `type Hub struct {
	inbox chan string
	routes map[string]int
}
`
	program, err := NewGoParser().Parse(src)
	require.NoError(t, err)

	hub := typeNamed(t, program, "Hub")
	assert.Equal(t, "BlockingQueue<String>", fieldNamed(t, hub, "inbox").DataType)
	assert.Equal(t, "Map<String, Integer>", fieldNamed(t, hub, "routes").DataType)
}

// Test: Struct tags are dropped from field declarations
func TestGoParser_StructTags(t *testing.T) {
	t.Parallel()

	src := "type User struct {\n\tName string `json:\"name\"`\n}\n"
	program, err := NewGoParser().Parse(src)
	require.NoError(t, err)

	user := typeNamed(t, program, "User")
	name := fieldNamed(t, user, "Name")
	assert.Equal(t, "String", name.DataType)
}

// Test: A method on an undeclared receiver stays a top-level callable
func TestGoParser_UnknownReceiver(t *testing.T) {
	t.Parallel()

	src := "func (w *Widget) Render() string {\n\treturn \"\"\n}\n"
	program, err := NewGoParser().Parse(src)
	require.NoError(t, err)

	render := freeCallableNamed(t, program, "Render")
	assert.Equal(t, "String", render.ReturnType)
	assert.False(t, render.Static)
}
