package registry

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// Test Plan for the registry:
// - Every supported language resolves to a parser and an emitter
// - Parser and emitter language metadata match the lookup key
// - Unknown languages fail with ErrUnsupportedLanguage
// - Path-based lookup follows the file extension
// - Languages() is complete and sorted

// Test: Every supported language resolves to a matching parser and emitter
func TestRegistry_Resolution(t *testing.T) {
	t.Parallel()

	r := New()
	for _, l := range lang.All() {
		p, err := r.ParserFor(l)
		require.NoError(t, err, l)
		assert.Equal(t, l, p.Language(), l)

		e, err := r.EmitterFor(l)
		require.NoError(t, err, l)
		assert.Equal(t, l, e.Language(), l)
	}
}

// Test: Unknown languages fail with ErrUnsupportedLanguage
func TestRegistry_Unsupported(t *testing.T) {
	t.Parallel()

	r := New()
	_, err := r.ParserFor(lang.Unknown)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))

	_, err = r.EmitterFor(lang.Unknown)
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

// Test: Path lookup follows the extension
func TestRegistry_ParserForPath(t *testing.T) {
	t.Parallel()

	r := New()
	p, err := r.ParserForPath("src/lib.rs")
	require.NoError(t, err)
	assert.Equal(t, lang.Rust, p.Language())

	_, err = r.ParserForPath("README.md")
	assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

// Test: Languages covers everything and is sorted by name
func TestRegistry_Languages(t *testing.T) {
	t.Parallel()

	got := New().Languages()
	assert.Len(t, got, len(lang.All()))
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].String(), got[i].String())
	}
}
