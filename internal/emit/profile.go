package emit

import "github.com/aseio6668/PolyType-sub001/internal/lang"

// profile holds the per-source-language wording used in generated comments.
// The structural output is identical across sources; only the notes differ.
type profile struct {
	// aggregateNote names the source construct a data aggregate came from.
	aggregateNote string
	// contractNote names the source construct behind an interface.
	contractNote string
	// singletonNote names the source construct behind a singleton.
	singletonNote string
	// concurrencyNote explains what a BlockingQueue spelling stands in for.
	concurrencyNote string
}

var profiles = map[lang.Language]profile{
	lang.Rust: {
		aggregateNote:   "Converted from a Rust struct with derived equality",
		contractNote:    "Converted from a Rust trait",
		singletonNote:   "Converted from a Rust singleton pattern",
		concurrencyNote: "Rust mpsc channel rendered as BlockingQueue; send/receive semantics not preserved",
	},
	lang.C: {
		aggregateNote:   "Converted from a C struct",
		contractNote:    "Converted from a C function table",
		singletonNote:   "Converted from a C singleton pattern",
		concurrencyNote: "C queue rendered as BlockingQueue",
	},
	lang.Cpp: {
		aggregateNote:   "Converted from a C++ class",
		contractNote:    "Converted from a C++ abstract class",
		singletonNote:   "Converted from a C++ singleton pattern",
		concurrencyNote: "C++ std::queue rendered as BlockingQueue",
	},
	lang.Python: {
		aggregateNote:   "Converted from a Python class with __eq__/__hash__/__repr__",
		contractNote:    "Converted from a Python abstract base class",
		singletonNote:   "Converted from a Python singleton pattern",
		concurrencyNote: "Python queue.Queue rendered as BlockingQueue",
	},
	lang.Kotlin: {
		aggregateNote:   "Converted from a Kotlin data class",
		contractNote:    "Converted from a Kotlin interface",
		singletonNote:   "Converted from a Kotlin object declaration",
		concurrencyNote: "Kotlin coroutine channel rendered as BlockingQueue; suspension not preserved",
	},
	lang.CSharp: {
		aggregateNote:   "Converted from a C# class with value equality",
		contractNote:    "Converted from a C# interface",
		singletonNote:   "Converted from a C# singleton pattern",
		concurrencyNote: "C# concurrent collection rendered as BlockingQueue",
	},
	lang.Swift: {
		aggregateNote:   "Converted from a Swift struct",
		contractNote:    "Converted from a Swift protocol",
		singletonNote:   "Converted from a Swift singleton pattern",
		concurrencyNote: "Swift queue rendered as BlockingQueue",
	},
	lang.JavaScript: {
		aggregateNote:   "Converted from a JavaScript class",
		contractNote:    "Converted from a JavaScript object contract",
		singletonNote:   "Converted from a JavaScript singleton pattern",
		concurrencyNote: "JavaScript queue rendered as BlockingQueue",
	},
	lang.TypeScript: {
		aggregateNote:   "Converted from a TypeScript class",
		contractNote:    "Converted from a TypeScript interface",
		singletonNote:   "Converted from a TypeScript singleton pattern",
		concurrencyNote: "TypeScript queue rendered as BlockingQueue",
	},
	lang.Go: {
		aggregateNote:   "Converted from a Go struct",
		contractNote:    "Converted from a Go interface",
		singletonNote:   "Converted from a Go singleton pattern",
		concurrencyNote: "Go channel rendered as BlockingQueue; select semantics not preserved",
	},
	lang.Scala: {
		aggregateNote:   "Converted from a Scala case class",
		contractNote:    "Converted from a Scala trait",
		singletonNote:   "Converted from a Scala object declaration",
		concurrencyNote: "Scala queue rendered as BlockingQueue",
	},
	lang.Crystal: {
		aggregateNote:   "Converted from a Crystal struct",
		contractNote:    "Converted from a Crystal module contract",
		singletonNote:   "Converted from a Crystal singleton pattern",
		concurrencyNote: "Crystal channel rendered as BlockingQueue; fiber semantics not preserved",
	},
	lang.Ruby: {
		aggregateNote:   "Converted from a Ruby class with attr accessors",
		contractNote:    "Converted from a Ruby module contract",
		singletonNote:   "Converted from a Ruby singleton pattern",
		concurrencyNote: "Ruby queue rendered as BlockingQueue",
	},
	lang.PHP: {
		aggregateNote:   "Converted from a PHP class",
		contractNote:    "Converted from a PHP interface",
		singletonNote:   "Converted from a PHP singleton pattern",
		concurrencyNote: "PHP queue rendered as BlockingQueue",
	},
}

func profileFor(l lang.Language) profile {
	if p, ok := profiles[l]; ok {
		return p
	}
	return profile{
		aggregateNote:   "Converted from a source data type",
		contractNote:    "Converted from a source contract",
		singletonNote:   "Converted from a source singleton pattern",
		concurrencyNote: "Channel type rendered as BlockingQueue",
	}
}
