package parsers

import (
	"regexp"
	"strings"
)

// Lexical preprocessing shared by the structural parsers. All substitutions
// replace stripped characters with spaces so byte offsets, and therefore
// recovered line numbers, stay valid. String literals are honored while
// scanning; comment-like text inside them survives.
//
// Each parser picks a quoteMode for the single quote. Languages that spell
// strings with it (Python, JavaScript) scan '...' as a full literal; languages
// where it only opens a character literal (Rust, C, Kotlin) scan just the
// short 'x' and '\x' forms, so a Rust lifetime tick ('a) stays ordinary text
// instead of swallowing the rest of the declaration.

// quoteMode selects how string scanning treats a single quote.
type quoteMode int

const (
	// stringQuotes treats '...' as a string literal.
	stringQuotes quoteMode = iota
	// charQuotes treats ' as a character literal in its 'x' / '\x' forms
	// only; a lone tick is ordinary text.
	charQuotes
)

// blankNonNewlines overwrites every non-newline byte of s with a space.
func blankNonNewlines(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
	return string(b)
}

// stripCComments blanks // line comments and /* */ block comments.
func stripCComments(src string, quotes quoteMode) string {
	var out strings.Builder
	out.Grow(len(src))
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := skipString(src, i, quotes)
			out.WriteString(src[i:end])
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			out.WriteString(blankNonNewlines(src[i:end]))
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				end = len(src)
			} else {
				end += i + 4
			}
			out.WriteString(blankNonNewlines(src[i:end]))
			i = end
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// stripHashComments blanks # line comments and triple-quoted blocks.
func stripHashComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case strings.HasPrefix(src[i:], `"""`) || strings.HasPrefix(src[i:], "'''"):
			quote := src[i : i+3]
			end := strings.Index(src[i+3:], quote)
			if end < 0 {
				end = len(src)
			} else {
				end += i + 6
			}
			out.WriteString(blankNonNewlines(src[i:end]))
			i = end
		case c == '"' || c == '\'':
			end := skipString(src, i, stringQuotes)
			out.WriteString(src[i:end])
			i = end
		case c == '#':
			end := strings.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			out.WriteString(blankNonNewlines(src[i:end]))
			i = end
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipString returns the index just past the string literal opening at i.
// In charQuotes mode a single quote that does not open a short character
// literal is consumed as one ordinary byte.
func skipString(src string, i int, quotes quoteMode) int {
	quote := src[i]
	if quote == '\'' && quotes == charQuotes {
		if i+3 < len(src) && src[i+1] == '\\' && src[i+3] == '\'' {
			return i + 4
		}
		if i+2 < len(src) && src[i+1] != '\\' && src[i+1] != '\'' && src[i+2] == '\'' {
			return i + 3
		}
		return i + 1
	}
	j := i + 1
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case quote:
			return j + 1
		case '\n':
			// Unterminated on this line; treat as closed so a stray
			// quote cannot swallow the rest of the file.
			if quote != '`' {
				return j
			}
		}
		j++
	}
	return len(src)
}

// stripDirectives blanks whole lines matching any of the given prefixes
// (import/use/include/package statements).
func stripDirectives(src string, prefixes ...string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, p := range prefixes {
			if strings.HasPrefix(trimmed, p) {
				lines[i] = strings.Repeat(" ", len(line))
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// matchDelimited scans forward from the opening delimiter at open and
// returns the content between the delimiters and the index just past the
// closing one. Nested pairs and string literals are honored.
func matchDelimited(src string, open int, openCh, closeCh byte, quotes quoteMode) (string, int, bool) {
	if open >= len(src) || src[open] != openCh {
		return "", open, false
	}
	depth := 0
	i := open
	for i < len(src) {
		switch src[i] {
		case '"', '\'', '`':
			i = skipString(src, i, quotes)
			continue
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return src[open+1 : i], i + 1, true
			}
		}
		i++
	}
	return "", len(src), false
}

// braceBlock isolates the {...} body opening at or after offset start.
func braceBlock(src string, start int, quotes quoteMode) (body string, end int, ok bool) {
	open := strings.IndexByte(src[start:], '{')
	if open < 0 {
		return "", start, false
	}
	return matchDelimited(src, start+open, '{', '}', quotes)
}

// parenBlock isolates the (...) list opening exactly at start.
func parenBlock(src string, start int, quotes quoteMode) (body string, end int, ok bool) {
	return matchDelimited(src, start, '(', ')', quotes)
}

// lineOf recovers the 1-based line number of a byte offset.
func lineOf(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n") + 1
}

// splitTopLevel splits s on sep at bracket depth zero, honoring string
// literals. Empty segments are dropped after trimming.
func splitTopLevel(s string, sep byte, quotes quoteMode) []string {
	var parts []string
	depth := 0
	start := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case '"', '\'', '`':
			i = skipString(s, i, quotes)
			continue
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
		i++
	}
	parts = append(parts, s[start:])
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// endBlock isolates the body of a keyword-delimited block (Ruby, Crystal):
// every line after the header down to the first bare "end" indented at or
// shallower than the header. Nested blocks close on deeper-indented ends.
func endBlock(text string, headerEnd, headerIndent int) (string, int) {
	i := strings.IndexByte(text[headerEnd:], '\n')
	if i < 0 {
		return "", len(text)
	}
	start := headerEnd + i + 1
	pos := start
	for pos < len(text) {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text) - pos
		}
		line := text[pos : pos+lineEnd]
		if strings.TrimSpace(line) == "end" && indentWidth(line) <= headerIndent {
			return text[start:pos], pos + lineEnd
		}
		pos += lineEnd + 1
	}
	return text[start:], len(text)
}

// firstLine truncates text for skip-list reporting.
func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	text = strings.TrimSpace(text)
	if len(text) > 120 {
		text = text[:120]
	}
	return text
}

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

func isIdentifier(s string) bool { return identRe.MatchString(s) }
