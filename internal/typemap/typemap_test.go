package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// Test Plan for the vocabulary maps:
// - Every supported language resolves to a map; Unknown does not
// - Primitive spellings translate to Java primitives
// - Container spellings produce boxed generic arguments
// - Wrapper types (Option, Optional, Nullable, Promise) unwrap
// - Unknown spellings pass through unchanged
// - Canonicalization is idempotent: f(f(x)) == f(x)

// Test: ForLanguage resolves every supported language
func TestForLanguage(t *testing.T) {
	t.Parallel()

	for _, l := range lang.All() {
		m := ForLanguage(l)
		require.NotNil(t, m, "no vocabulary map for %s", l)
	}
	assert.Nil(t, ForLanguage(lang.Unknown))
}

// Test: Rust spellings canonicalize
func TestRustMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Rust)
	cases := map[string]string{
		"i32":                  "int",
		"u64":                  "long",
		"f64":                  "double",
		"bool":                 "boolean",
		"String":               "String",
		"&str":                 "String",
		"()":                   "void",
		"Vec<i32>":             "List<Integer>",
		"Vec<String>":          "List<String>",
		"HashSet<u8>":          "Set<Integer>",
		"HashMap<String, i64>": "Map<String, Long>",
		"Option<String>":       "String",
		"Box<Vec<f32>>":        "List<Float>",
		"&mut Vec<u8>":         "List<Integer>",
		"Sender<String>":       "BlockingQueue<String>",
		"[i8; 16]":             "byte[]",
		"Inventory":            "Inventory",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: C and C++ spellings canonicalize
func TestCppMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Cpp)
	cases := map[string]string{
		"int":                        "int",
		"size_t":                     "long",
		"unsigned char":              "byte",
		"bool":                       "boolean",
		"char*":                      "String",
		"const char*":                "String",
		"std::string":                "String",
		"const std::string&":         "String",
		"std::vector<int>":           "List<Integer>",
		"std::map<std::string, int>": "Map<String, Integer>",
		"std::unique_ptr<Widget>":    "Widget",
		"std::optional<double>":      "double",
		"std::queue<int>":            "BlockingQueue<Integer>",
		"int[64]":                    "int[]",
		"auto":                       "Object",
		"Widget*":                    "Widget",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
	assert.Equal(t, "String", ForLanguage(lang.C).Canonicalize("char*"))
}

// Test: Python annotations canonicalize
func TestPythonMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Python)
	cases := map[string]string{
		"int":            "int",
		"float":          "double",
		"str":            "String",
		"bool":           "boolean",
		"bytes":          "byte[]",
		"None":           "void",
		"Any":            "Object",
		"List[int]":      "List<Integer>",
		"Dict[str, int]": "Map<String, Integer>",
		"Set[str]":       "Set<String>",
		"Optional[str]":  "String",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Kotlin spellings canonicalize
func TestKotlinMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Kotlin)
	cases := map[string]string{
		"Int":                 "int",
		"Long":                "long",
		"Double":              "double",
		"Boolean":             "boolean",
		"String":              "String",
		"String?":             "String",
		"Unit":                "void",
		"Any":                 "Object",
		"List<Int>":           "List<Integer>",
		"MutableList<String>": "List<String>",
		"Map<String, Int>":    "Map<String, Integer>",
		"Array<String>":       "String[]",
		"Channel<Int>":        "BlockingQueue<Integer>",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: C# spellings canonicalize
func TestCSharpMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.CSharp)
	cases := map[string]string{
		"int":                     "int",
		"string":                  "String",
		"bool":                    "boolean",
		"decimal":                 "double",
		"int?":                    "int",
		"List<int>":               "List<Integer>",
		"Dictionary<string, int>": "Map<String, Integer>",
		"HashSet<string>":         "Set<String>",
		"Task<string>":            "String",
		"Task":                    "void",
		"object":                  "Object",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Swift spellings canonicalize
func TestSwiftMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Swift)
	cases := map[string]string{
		"Int":              "int",
		"Double":           "double",
		"Bool":             "boolean",
		"String":           "String",
		"String?":          "String",
		"Character":        "char",
		"[Int]":            "List<Integer>",
		"[String: Int]":    "Map<String, Integer>",
		"Set<String>":      "Set<String>",
		"Optional<Double>": "double",
		"Data":             "byte[]",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: JavaScript and TypeScript annotations canonicalize
func TestJavaScriptMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.TypeScript)
	cases := map[string]string{
		"number":              "double",
		"bigint":              "long",
		"string":              "String",
		"boolean":             "boolean",
		"void":                "void",
		"any":                 "Object",
		"string[]":            "List<String>",
		"Array<number>":       "List<Double>",
		"Map<string, number>": "Map<String, Double>",
		"Promise<string>":     "String",
		"string | null":       "String",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Go spellings canonicalize
func TestGoMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Go)
	cases := map[string]string{
		"int":            "int",
		"int64":          "long",
		"float64":        "double",
		"bool":           "boolean",
		"string":         "String",
		"error":          "Exception",
		"interface{}":    "Object",
		"any":            "Object",
		"[]string":       "List<String>",
		"map[string]int": "Map<String, Integer>",
		"chan string":    "BlockingQueue<String>",
		"*Point":         "Point",
		"[4]byte":        "byte[]",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Scala spellings canonicalize
func TestScalaMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Scala)
	cases := map[string]string{
		"Int":              "int",
		"Long":             "long",
		"Double":           "double",
		"Boolean":          "boolean",
		"String":           "String",
		"Any":              "Object",
		"Unit":             "void",
		"List[Int]":        "List<Integer>",
		"Seq[String]":      "List<String>",
		"Map[String, Int]": "Map<String, Integer>",
		"Set[String]":      "Set<String>",
		"Option[String]":   "String",
		"Array[Byte]":      "byte[]",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Crystal spellings canonicalize
func TestCrystalMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Crystal)
	cases := map[string]string{
		"Int32":               "int",
		"Int64":               "long",
		"Float64":             "double",
		"Bool":                "boolean",
		"String":              "String",
		"String?":             "String",
		"Array(Int32)":        "List<Integer>",
		"Hash(String, Int32)": "Map<String, Integer>",
		"Set(String)":         "Set<String>",
		"Channel(Int32)":      "BlockingQueue<Integer>",
		"Reading":             "Reading",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Inferred Ruby class names canonicalize
func TestRubyMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.Ruby)
	cases := map[string]string{
		"Integer": "int",
		"Float":   "double",
		"Boolean": "boolean",
		"String":  "String",
		"Symbol":  "String",
		"Array":   "List<Object>",
		"Hash":    "Map<Object, Object>",
		"Object":  "Object",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: PHP declarations canonicalize
func TestPhpMap(t *testing.T) {
	t.Parallel()

	m := ForLanguage(lang.PHP)
	cases := map[string]string{
		"int":            "int",
		"float":          "double",
		"string":         "String",
		"bool":           "boolean",
		"void":           "void",
		"array":          "List<Object>",
		"mixed":          "Object",
		"?string":        "String",
		"string|null":    "String",
		"\\App\\Invoice": "Invoice",
		"Invoice":        "Invoice",
	}
	for spelling, want := range cases {
		assert.Equal(t, want, m.Canonicalize(spelling), "spelling %q", spelling)
	}
}

// Test: Canonicalization is idempotent for every map
func TestCanonicalize_Idempotent(t *testing.T) {
	t.Parallel()

	spellings := []string{
		"i32", "Vec<Vec<i32>>", "HashMap<String, Vec<u8>>",
		"std::vector<std::string>", "const char*", "int[8]",
		"List[int]", "Dict[str, List[int]]", "Optional[str]",
		"List<Int>", "Map<String, List<Int>>", "String?",
		"Dictionary<string, List<int>>", "Task<bool>",
		"[String: [Int]]", "Set<String>",
		"Array<Array<number>>", "Promise<string[]>",
		"map[string][]int", "chan int", "*Widget",
		"", "CustomType", "Map<String, Integer>", "List<Double>",
	}
	for _, l := range lang.All() {
		m := ForLanguage(l)
		for _, s := range spellings {
			once := m.Canonicalize(s)
			twice := m.Canonicalize(once)
			assert.Equal(t, once, twice, "%s: %q not idempotent", l, s)
		}
	}
}
