package validate

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/emit"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/parsers"
)

// Test Plan for Java validation:
// - Well-formed Java passes
// - Syntax errors fail with ErrInvalidJava and a line position
// - Emitter output for a real parse passes the grammar

// Test: Well-formed Java passes
func TestJava_Valid(t *testing.T) {
	t.Parallel()

	src := `public class Point {
    private int x = 0;

    public int getX() {
        return this.x;
    }
}
`
	assert.NoError(t, Java(src))
	assert.NoError(t, Java(""), "an empty compilation unit is valid")
}

// Test: Syntax errors fail with ErrInvalidJava and a position
func TestJava_Invalid(t *testing.T) {
	t.Parallel()

	err := Java("public class Point {\n    private int = ;\n}\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidJava))
	assert.Contains(t, err.Error(), "line ")
}

// Test: Emitter output for a parsed source passes the grammar
func TestJava_EmittedOutput(t *testing.T) {
	t.Parallel()

	src := `pub struct Reading {
    pub value: i32,
    unit: String,
}

pub fn take_reading() -> Reading {
    Reading { value: 0, unit: String::new() }
}
`
	program, err := parsers.NewRustParser().Parse(src)
	require.NoError(t, err)

	out, err := emit.NewJavaEmitter(lang.Rust).Emit(program, nil)
	require.NoError(t, err)

	// Free functions sit outside a class wrapper, so validate the class
	// body alone plus a wrapped copy of the whole unit.
	assert.NoError(t, Java("class Holder {\n"+out+"\n}"))
}
