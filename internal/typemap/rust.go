package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type rustMap struct{}

func (rustMap) Language() lang.Language { return lang.Rust }

func (m rustMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// References, lifetimes, and smart pointers carry no meaning in the
	// target.
	t = strings.TrimPrefix(t, "&mut ")
	t = strings.TrimPrefix(t, "&")
	if strings.HasPrefix(t, "'") {
		if _, rest, found := strings.Cut(t[1:], " "); found {
			t = strings.TrimSpace(rest)
		}
	}
	t = strings.TrimPrefix(t, "mut ")
	if inner, ok := genericArg(t, "Box<"); ok {
		return m.Canonicalize(inner)
	}
	if inner, ok := genericArg(t, "Rc<"); ok {
		return m.Canonicalize(inner)
	}
	if inner, ok := genericArg(t, "Arc<"); ok {
		return m.Canonicalize(inner)
	}

	// Option<T> unwraps; the target's null stands in for None.
	if inner, ok := genericArg(t, "Option<"); ok {
		return m.Canonicalize(inner)
	}

	if inner, ok := genericArg(t, "Vec<"); ok {
		return listOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "VecDeque<"); ok {
		return listOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "HashSet<"); ok {
		return setOf(m.Canonicalize(inner))
	}
	if args, ok := genericArg(t, "HashMap<"); ok {
		if k, v, ok := splitKeyValue(args); ok {
			return mapOf(m.Canonicalize(k), m.Canonicalize(v))
		}
	}
	if args, ok := genericArg(t, "BTreeMap<"); ok {
		if k, v, ok := splitKeyValue(args); ok {
			return mapOf(m.Canonicalize(k), m.Canonicalize(v))
		}
	}

	// mpsc endpoints approximate to a blocking queue; the channel's
	// send/receive semantics are not preserved.
	if inner, ok := genericArg(t, "Sender<"); ok {
		return queueOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "Receiver<"); ok {
		return queueOf(m.Canonicalize(inner))
	}

	// [T; N] fixed arrays.
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		body := t[1 : len(t)-1]
		if elem, _, found := strings.Cut(body, ";"); found {
			return m.Canonicalize(strings.TrimSpace(elem)) + "[]"
		}
		return listOf(m.Canonicalize(strings.TrimSpace(body)))
	}

	switch t {
	case "i8":
		return "byte"
	case "i16":
		return "short"
	case "i32", "u8", "u16", "u32", "usize", "isize":
		return "int"
	case "i64", "u64":
		return "long"
	case "f32":
		return "float"
	case "f64":
		return "double"
	case "bool":
		return "boolean"
	case "char":
		return "char"
	case "String", "str", "&str":
		return "String"
	case "()":
		return "void"
	}
	return t
}
