// Package parsers contains the per-language structural parsers. Each parser
// recognizes declarations by lexical pattern matching over preprocessed
// source text, isolates declaration bodies by brace-depth scanning, and
// canonicalizes every type spelling through the language's vocabulary map.
//
// Parsers are best-effort: a declaration that matches a pattern but cannot
// be understood is recorded on the Program's skip list and parsing
// continues. Only whole-file decode failures are errors.
//
// Parser values hold no per-call state and are safe for concurrent use.
package parsers

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// ErrParseFailure marks a whole-file structural mismatch. Per-declaration
// mismatches never produce it; they are skipped instead.
var ErrParseFailure = errors.New("parse failure")

// Parser turns source text of one language into a Program tree.
type Parser interface {
	// Parse builds a Program from source text. It fails only when the
	// text cannot be decoded at all.
	Parse(src string) (*ast.Program, error)

	// ParseFile reads and parses a file. IO errors propagate unchanged.
	ParseFile(path string) (*ast.Program, error)

	// Language reports the source language this parser accepts.
	Language() lang.Language

	// CanHandle reports whether the file name's suffix belongs to this
	// parser's language.
	CanHandle(filename string) bool
}

// checkDecodable rejects input the lexical patterns cannot operate on.
func checkDecodable(src string) error {
	if !utf8.ValidString(src) {
		return errors.Wrap(ErrParseFailure, "source is not valid UTF-8")
	}
	return nil
}

func parseFile(p Parser, path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(string(data))
}

func canHandle(l lang.Language, filename string) bool {
	for _, ext := range l.Extensions() {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
