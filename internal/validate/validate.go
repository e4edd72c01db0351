// Package validate checks emitted Java against the real Java grammar. It is
// a syntax gate only; name resolution and typing are out of scope.
package validate

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// ErrInvalidJava marks output the Java grammar rejected.
var ErrInvalidJava = errors.New("invalid java source")

var javaLanguage = sitter.NewLanguage(java.Language())

// Java parses src with the tree-sitter Java grammar and reports every error
// node with its line position. A nil return means the source is
// syntactically valid Java.
func Java(src string) error {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(javaLanguage); err != nil {
		return errors.Wrap(err, "loading java grammar")
	}

	tree := parser.Parse([]byte(src), nil)
	if tree == nil {
		return errors.Wrap(ErrInvalidJava, "grammar produced no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	var faults []string
	walkTree(root, func(n *sitter.Node) bool {
		if n.IsError() || n.IsMissing() {
			faults = append(faults, fmt.Sprintf("line %d: %s", n.StartPosition().Row+1, n.Kind()))
			return false
		}
		return true
	})
	if len(faults) == 0 {
		faults = append(faults, fmt.Sprintf("line %d: unlocated syntax error", root.StartPosition().Row+1))
	}
	return errors.Wrapf(ErrInvalidJava, "%s", strings.Join(faults, "; "))
}

func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !visitor(node) {
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}
