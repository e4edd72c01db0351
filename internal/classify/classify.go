// Package classify disambiguates constructs the source language leaves
// implicit. Classification is purely structural over the immutable AST shape
// of a type declaration; no dispatch, no parser cooperation.
package classify

import "github.com/aseio6668/PolyType-sub001/internal/ast"

// Kind labels what a type declaration most likely represents.
type Kind int

const (
	// PlainType is the fallback for shapes matching no heuristic.
	PlainType Kind = iota
	// DataAggregate primarily holds fields; it receives synthesized
	// equality, hash, and string members on emission.
	DataAggregate
	// BehavioralContract defines only method signatures.
	BehavioralContract
	// Singleton exposes a getInstance accessor.
	Singleton
)

func (k Kind) String() string {
	switch k {
	case DataAggregate:
		return "data aggregate"
	case BehavioralContract:
		return "behavioral contract"
	case Singleton:
		return "singleton"
	}
	return "plain type"
}

// Classify labels a type declaration from the shape of its members.
// Priority: contract, then singleton, then data aggregate. A type with no
// members is always a PlainType. A plain type that happens to define
// equals/hashCode/toString is indistinguishable from a data aggregate here;
// that ambiguity is accepted.
func Classify(t *ast.TypeDeclaration) Kind {
	if t == nil || len(t.Members) == 0 {
		return PlainType
	}

	callables := t.Callables()
	if len(t.Fields()) == 0 && len(callables) == len(t.Members) && len(callables) > 0 {
		return BehavioralContract
	}

	var hasEquals, hasHash, hasString bool
	for _, c := range callables {
		switch c.Name {
		case "getInstance":
			return Singleton
		case "equals", "eq", "__eq__", "Equals":
			hasEquals = true
		case "hashCode", "hash", "__hash__", "GetHashCode":
			hasHash = true
		case "toString", "to_string", "__str__", "__repr__", "ToString", "description":
			hasString = true
		}
	}
	if hasEquals && hasHash && hasString {
		return DataAggregate
	}
	return PlainType
}
