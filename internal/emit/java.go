// Package emit renders the language-agnostic declaration tree as Java
// skeleton source. Emission is total over well-formed trees: malformed
// nodes degrade to valid placeholder output instead of failing. Emitter
// values hold no per-call state; every Emit call builds its own writer, so
// one emitter may serve many goroutines.
package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/classify"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// Emitter renders a parsed Program as target source text.
type Emitter interface {
	// Emit renders the program. It fails only on a nil program; structural
	// oddities degrade to valid placeholder output.
	Emit(program *ast.Program, opts Options) (string, error)

	// Language reports the source language this emitter is profiled for.
	Language() lang.Language

	// DefaultOptions returns the emitter's stock configuration.
	DefaultOptions() Options
}

// JavaEmitter renders Java skeletons. The source language only influences
// generated comment wording; the structural output is uniform.
type JavaEmitter struct {
	source  lang.Language
	profile profile
}

// NewJavaEmitter creates a Java emitter profiled for one source language.
func NewJavaEmitter(source lang.Language) *JavaEmitter {
	return &JavaEmitter{source: source, profile: profileFor(source)}
}

func (e *JavaEmitter) Language() lang.Language { return e.source }

func (e *JavaEmitter) DefaultOptions() Options { return DefaultOptions() }

func (e *JavaEmitter) Emit(program *ast.Program, opts Options) (string, error) {
	if program == nil {
		return "", errors.New("cannot emit a nil program")
	}
	if opts == nil {
		opts = DefaultOptions()
	}
	w := &writer{step: opts.Int(OptIndentSize, 4)}

	if opts.Bool(OptGenerateComments, true) {
		w.linef("// Generated from %s source code", e.source)
		w.line("// Migrated using PolyType")
		w.blank()
	}
	if opts.Bool(OptGenerateImports, true) {
		writeImports(w, program)
	}

	for i, n := range program.Nodes {
		if i > 0 {
			w.blank()
		}
		switch d := n.(type) {
		case *ast.TypeDeclaration:
			e.writeType(w, d, opts)
		case *ast.CallableDeclaration:
			e.writeCallable(w, nil, d, opts, classify.PlainType)
		}
	}
	return w.String(), nil
}

// importNeeds maps a canonical type marker to the imports it requires.
var importNeeds = []struct {
	marker  string
	imports []string
}{
	{"List<", []string{"java.util.ArrayList", "java.util.List"}},
	{"Map<", []string{"java.util.HashMap", "java.util.Map"}},
	{"Set<", []string{"java.util.HashSet", "java.util.Set"}},
	{"BlockingQueue<", []string{"java.util.concurrent.BlockingQueue", "java.util.concurrent.LinkedBlockingQueue"}},
}

func writeImports(w *writer, program *ast.Program) {
	needed := make(map[string]bool)

	addSpelling := func(t string) {
		for _, n := range importNeeds {
			if strings.Contains(t, n.marker) {
				for _, imp := range n.imports {
					needed[imp] = true
				}
			}
		}
	}
	ast.Walk(program, func(n ast.Node) bool {
		switch d := n.(type) {
		case *ast.FieldDeclaration:
			addSpelling(d.DataType)
		case *ast.CallableDeclaration:
			addSpelling(d.ReturnType)
		case *ast.Parameter:
			addSpelling(d.DataType)
		}
		return true
	})
	for _, t := range program.Types() {
		if classify.Classify(t) == classify.DataAggregate {
			needed["java.util.Objects"] = true
		}
	}

	if len(needed) == 0 {
		return
	}
	var imports []string
	for imp := range needed {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	for _, imp := range imports {
		w.line("import " + imp + ";")
	}
	w.blank()
}

func (e *JavaEmitter) writeType(w *writer, decl *ast.TypeDeclaration, opts Options) {
	kind := classify.Classify(decl)
	name := decl.Name
	if name == "" {
		name = "Unnamed"
	}
	comments := opts.Bool(OptGenerateComments, true)

	if opts.Bool(OptGenerateJavadoc, false) {
		w.line("/**")
		w.linef(" * %s.", name)
		w.line(" */")
	}
	if comments {
		switch kind {
		case classify.DataAggregate:
			w.line("// " + e.profile.aggregateNote)
		case classify.BehavioralContract:
			w.line("// " + e.profile.contractNote)
		case classify.Singleton:
			w.line("// " + e.profile.singletonNote)
		}
	}

	mod := ""
	if decl.Public {
		mod = "public "
	}

	if kind == classify.BehavioralContract {
		w.line(mod + "interface " + name + " {")
		w.push()
		for i, c := range decl.Callables() {
			if i > 0 {
				w.blank()
			}
			e.writeQueueNote(w, c, opts)
			w.line(signatureOf(c) + ";")
		}
		w.pop()
		w.line("}")
		return
	}

	w.line(mod + "class " + name + " {")
	w.push()

	first := true
	sep := func() {
		if !first {
			w.blank()
		}
		first = false
	}

	if kind == classify.Singleton {
		sep()
		w.linef("private static final %s INSTANCE = new %s();", name, name)
	}

	fields := decl.Fields()
	if len(fields) > 0 {
		sep()
		for _, f := range fields {
			e.writeField(w, f, opts)
		}
	}

	if kind == classify.Singleton {
		sep()
		w.linef("private %s() {", name)
		w.line("}")
		sep()
		w.linef("public static %s getInstance() {", name)
		w.push()
		w.line("return INSTANCE;")
		w.pop()
		w.line("}")
	}

	emitted := make(map[string]bool)
	hasCtor := false
	for _, c := range decl.Callables() {
		if kind == classify.Singleton && (c.Name == "getInstance" || c.Name == name) {
			continue
		}
		if c.Name == name {
			hasCtor = true
		}
		emitted[c.Name] = true
		sep()
		e.writeCallable(w, decl, c, opts, kind)
	}

	if kind != classify.Singleton && !hasCtor && len(fields) > 0 {
		sep()
		e.writeStubConstructor(w, name, decl.Public, opts)
	}

	if opts.Bool(OptGenerateAccessors, true) {
		for _, f := range fields {
			if f.Public || f.Name == "" {
				continue
			}
			getter := "get" + capitalize(f.Name)
			if !emitted[getter] {
				emitted[getter] = true
				sep()
				e.writeSynthGetter(w, f)
			}
			setter := "set" + capitalize(f.Name)
			if f.Mutable && !emitted[setter] {
				emitted[setter] = true
				sep()
				e.writeSynthSetter(w, f)
			}
		}
	}

	if kind == classify.DataAggregate {
		if !emitted["equals"] {
			sep()
			e.writeEquals(w, decl, name)
		}
		if !emitted["hashCode"] {
			sep()
			e.writeHashCode(w, decl)
		}
		if !emitted["toString"] {
			sep()
			e.writeToString(w, decl, name)
		}
	}

	w.pop()
	w.line("}")
}

func (e *JavaEmitter) writeField(w *writer, f *ast.FieldDeclaration, opts Options) {
	dataType := f.DataType
	if dataType == "" {
		dataType = "Object"
	}
	name := f.Name
	if name == "" {
		name = "field"
	}
	if opts.Bool(OptConcurrencyAsComment, true) && opts.Bool(OptGenerateComments, true) &&
		strings.Contains(dataType, "BlockingQueue<") {
		w.line("// " + e.profile.concurrencyNote)
	}

	mods := visibility(f.Public)
	if !f.Mutable {
		mods += "final "
	}
	w.linef("%s%s %s = %s;", mods, dataType, name, initializerFor(f, dataType))
}

// writeCallable renders a constructor or method. A nil owner means the
// callable was declared at the top level of the source file.
func (e *JavaEmitter) writeCallable(w *writer, owner *ast.TypeDeclaration, c *ast.CallableDeclaration, opts Options, kind classify.Kind) {
	name := c.Name
	if name == "" {
		name = "unnamed"
	}
	comments := opts.Bool(OptGenerateComments, true)

	if opts.Bool(OptGenerateJavadoc, false) && c.Public {
		w.line("/**")
		w.linef(" * %s.", name)
		w.line(" */")
	}
	e.writeQueueNote(w, c, opts)

	// Constructor.
	if owner != nil && name == owner.Name {
		w.linef("%s%s(%s) {", visibility(c.Public), name, paramList(c))
		w.push()
		assigned := false
		for _, p := range c.Params {
			if p.Name != "" && hasField(owner, p.Name) {
				w.linef("this.%s = %s;", p.Name, p.Name)
				assigned = true
			}
		}
		if !assigned && comments {
			w.line("// TODO: Implement constructor")
		}
		w.pop()
		w.line("}")
		return
	}

	if owner != nil && kind == classify.DataAggregate &&
		(name == "equals" || name == "hashCode" || name == "toString") {
		w.line("@Override")
	}
	w.line(headerOf(c) + " {")
	w.push()

	prop := accessorProperty(name)
	switch {
	case owner != nil && strings.HasPrefix(name, "get") && prop != "" &&
		len(c.Params) == 0 && c.ReturnType != ast.VoidType:
		w.linef("return this.%s;", prop)
	case owner != nil && strings.HasPrefix(name, "set") && prop != "" && len(c.Params) == 1:
		w.linef("this.%s = %s;", prop, paramName(c.Params[0], 0))
	case owner != nil && kind == classify.DataAggregate && name == "equals" && len(c.Params) == 1:
		writeEqualsBody(w, owner, owner.Name, paramName(c.Params[0], 0))
	case owner != nil && kind == classify.DataAggregate && name == "hashCode":
		writeHashCodeBody(w, owner)
	case owner != nil && kind == classify.DataAggregate && name == "toString":
		writeToStringBody(w, owner, owner.Name)
	default:
		if comments {
			w.line("// TODO: Implement method body")
		}
		if c.ReturnType != ast.VoidType && c.ReturnType != "" {
			w.linef("return %s;", defaultValue(c.ReturnType))
		}
	}

	w.pop()
	w.line("}")
}

func (e *JavaEmitter) writeQueueNote(w *writer, c *ast.CallableDeclaration, opts Options) {
	if !opts.Bool(OptConcurrencyAsComment, true) || !opts.Bool(OptGenerateComments, true) {
		return
	}
	queued := strings.Contains(c.ReturnType, "BlockingQueue<")
	for _, p := range c.Params {
		queued = queued || strings.Contains(p.DataType, "BlockingQueue<")
	}
	if queued {
		w.line("// " + e.profile.concurrencyNote)
	}
}

func (e *JavaEmitter) writeStubConstructor(w *writer, name string, public bool, opts Options) {
	w.linef("%s%s() {", visibility(public), name)
	w.push()
	if opts.Bool(OptGenerateComments, true) {
		w.line("// TODO: Implement constructor")
	}
	w.pop()
	w.line("}")
}

func (e *JavaEmitter) writeSynthGetter(w *writer, f *ast.FieldDeclaration) {
	dataType := f.DataType
	if dataType == "" {
		dataType = "Object"
	}
	w.linef("public %s get%s() {", dataType, capitalize(f.Name))
	w.push()
	w.linef("return this.%s;", f.Name)
	w.pop()
	w.line("}")
}

func (e *JavaEmitter) writeSynthSetter(w *writer, f *ast.FieldDeclaration) {
	dataType := f.DataType
	if dataType == "" {
		dataType = "Object"
	}
	w.linef("public void set%s(%s %s) {", capitalize(f.Name), dataType, f.Name)
	w.push()
	w.linef("this.%s = %s;", f.Name, f.Name)
	w.pop()
	w.line("}")
}

func (e *JavaEmitter) writeEquals(w *writer, decl *ast.TypeDeclaration, name string) {
	w.line("@Override")
	w.line("public boolean equals(Object other) {")
	w.push()
	writeEqualsBody(w, decl, name, "other")
	w.pop()
	w.line("}")
}

func writeEqualsBody(w *writer, decl *ast.TypeDeclaration, name, arg string) {
	if arg == "" {
		arg = "other"
	}
	w.linef("if (this == %s) {", arg)
	w.push()
	w.line("return true;")
	w.pop()
	w.line("}")
	w.linef("if (%s == null || getClass() != %s.getClass()) {", arg, arg)
	w.push()
	w.line("return false;")
	w.pop()
	w.line("}")
	w.linef("%s that = (%s) %s;", name, name, arg)

	var terms []string
	for _, f := range decl.Fields() {
		if f.Name == "" {
			continue
		}
		terms = append(terms, fmt.Sprintf("Objects.equals(this.%s, that.%s)", f.Name, f.Name))
	}
	if len(terms) == 0 {
		w.line("return true;")
		return
	}
	w.linef("return %s;", strings.Join(terms, " && "))
}

func (e *JavaEmitter) writeHashCode(w *writer, decl *ast.TypeDeclaration) {
	w.line("@Override")
	w.line("public int hashCode() {")
	w.push()
	writeHashCodeBody(w, decl)
	w.pop()
	w.line("}")
}

func writeHashCodeBody(w *writer, decl *ast.TypeDeclaration) {
	var names []string
	for _, f := range decl.Fields() {
		if f.Name != "" {
			names = append(names, f.Name)
		}
	}
	if len(names) == 0 {
		w.line("return 0;")
		return
	}
	w.linef("return Objects.hash(%s);", strings.Join(names, ", "))
}

func (e *JavaEmitter) writeToString(w *writer, decl *ast.TypeDeclaration, name string) {
	w.line("@Override")
	w.line("public String toString() {")
	w.push()
	writeToStringBody(w, decl, name)
	w.pop()
	w.line("}")
}

func writeToStringBody(w *writer, decl *ast.TypeDeclaration, name string) {
	var parts []string
	for _, f := range decl.Fields() {
		if f.Name == "" {
			continue
		}
		lead := f.Name + "="
		if len(parts) > 0 {
			lead = ", " + lead
		}
		parts = append(parts, fmt.Sprintf("%q + %s", lead, f.Name))
	}
	if len(parts) == 0 {
		w.linef("return %q;", name+"{}")
		return
	}
	w.linef("return %q + %s + \"}\";", name+"{", strings.Join(parts, " + "))
}

// headerOf builds a method header up to the parameter list's close paren.
func headerOf(c *ast.CallableDeclaration) string {
	var b strings.Builder
	b.WriteString(visibility(c.Public))
	if c.Static {
		b.WriteString("static ")
	}
	b.WriteString(signatureOf(c))
	return b.String()
}

// signatureOf builds "ReturnType name(params)" without modifiers, as used
// inside interface bodies.
func signatureOf(c *ast.CallableDeclaration) string {
	returnType := c.ReturnType
	if returnType == "" {
		returnType = ast.VoidType
	}
	name := c.Name
	if name == "" {
		name = "unnamed"
	}
	return returnType + " " + name + "(" + paramList(c) + ")"
}

func paramList(c *ast.CallableDeclaration) string {
	var parts []string
	for i, p := range c.Params {
		dataType := p.DataType
		if dataType == "" {
			dataType = "Object"
		}
		parts = append(parts, dataType+" "+paramName(p, i))
	}
	return strings.Join(parts, ", ")
}

func paramName(p *ast.Parameter, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("arg%d", i)
}

// accessorProperty derives the implied field name from a getX/setX name;
// empty when the name does not follow the convention.
func accessorProperty(name string) string {
	if len(name) <= 3 {
		return ""
	}
	return lowerFirst(name[3:])
}

func hasField(decl *ast.TypeDeclaration, name string) bool {
	for _, f := range decl.Fields() {
		if f.Name == name {
			return true
		}
	}
	return false
}

func visibility(public bool) string {
	if public {
		return "public "
	}
	return "private "
}

// literalLike reports whether initializer text is a bare literal safe to
// carry into the target verbatim.
func literalLike(s string) bool {
	if s == "true" || s == "false" {
		return true
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return true
	}
	dot := false
	for i, r := range s {
		switch {
		case r == '-' && i == 0:
		case r == '.' && !dot:
			dot = true
		case r < '0' || r > '9':
			return false
		}
	}
	return len(s) > 0 && s != "-"
}

// initializerFor keeps simple source literals; everything else falls back
// to the canonical default for the field's type.
func initializerFor(f *ast.FieldDeclaration, dataType string) string {
	init := strings.TrimSpace(f.Initializer)
	if init != "" && literalLike(init) {
		return init
	}
	return defaultValue(dataType)
}

// defaultValue returns the canonical default initializer for a canonical
// type spelling.
func defaultValue(t string) string {
	switch t {
	case "int", "long", "short", "byte":
		return "0"
	case "float":
		return "0.0f"
	case "double":
		return "0.0"
	case "boolean":
		return "false"
	case "char":
		return "'\\0'"
	case "String":
		return "\"\""
	}
	switch {
	case strings.HasPrefix(t, "List<"):
		return "new ArrayList<>()"
	case strings.HasPrefix(t, "Map<"):
		return "new HashMap<>()"
	case strings.HasPrefix(t, "Set<"):
		return "new HashSet<>()"
	case strings.HasPrefix(t, "BlockingQueue<"):
		return "new LinkedBlockingQueue<>()"
	case strings.HasSuffix(t, "[]"):
		return "new " + t[:len(t)-2] + "[0]"
	}
	return "null"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// writer is the per-call emission state: an output buffer plus an indent
// counter that never goes negative.
type writer struct {
	out   strings.Builder
	level int
	step  int
}

func (w *writer) push() { w.level++ }

func (w *writer) pop() {
	if w.level > 0 {
		w.level--
	}
}

func (w *writer) line(s string) {
	if s != "" {
		w.out.WriteString(strings.Repeat(" ", w.level*w.step))
		w.out.WriteString(s)
	}
	w.out.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

func (w *writer) blank() { w.out.WriteByte('\n') }

func (w *writer) String() string { return w.out.String() }
