package transform

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/conn-castle/upshift/internal/messages"
)

// RuleEngine is the built-in Engine. It rewrites source by applying each
// rule of a definition in order over a lexical scan of the file.
type RuleEngine struct{}

// NewRuleEngine returns the built-in engine.
func NewRuleEngine() RuleEngine {
	return RuleEngine{}
}

// Rewrite applies def to src. It returns src itself when no rule matched.
func (RuleEngine) Rewrite(src []byte, def Definition) ([]byte, error) {
	if !utf8.Valid(src) {
		return nil, &Failure{Transform: def.ID, Message: messages.EngineInvalidUTF8}
	}
	out := src
	for _, rule := range def.Rules {
		segs, scanErr := scan(out)
		if scanErr != nil {
			return nil, &Failure{Transform: def.ID, Line: lineAt(out, scanErr.offset), Message: scanErr.message}
		}
		out = applyRule(out, segs, rule)
	}
	if bytes.Equal(out, src) {
		return src, nil
	}
	return out, nil
}

func applyRule(src []byte, segs []segment, rule Rule) []byte {
	var buf bytes.Buffer
	buf.Grow(len(src))
	changed := false
	for idx, seg := range segs {
		text := src[seg.start:seg.end]
		var replaced []byte
		switch {
		case seg.kind == segCode && rule.Kind != RuleImportSource:
			replaced = rewriteCode(src, seg, rule)
		case seg.kind == segString && rule.Kind == RuleImportSource && isSpecifierPosition(src, segs, idx):
			replaced = rewriteSpecifier(text, rule)
		}
		if replaced == nil {
			buf.Write(text)
			continue
		}
		changed = true
		buf.Write(replaced)
	}
	if !changed {
		return src
	}
	return buf.Bytes()
}

// rewriteCode renames identifier tokens inside one code segment. It returns
// nil when nothing matched. Token boundaries are checked against the whole
// file so a segment edge never splits a word.
func rewriteCode(src []byte, seg segment, rule Rule) []byte {
	fromWords := strings.Fields(rule.From)
	var out []byte
	last := seg.start
	i := seg.start
	for i < seg.end {
		if !isIdentStart(src[i]) || (i > 0 && isIdentPart(src[i-1])) {
			i++
			continue
		}
		wordEnd := identEnd(src, i, seg.end)
		word := string(src[i:wordEnd])
		matchEnd := -1
		switch rule.Kind {
		case RuleIdentifier:
			if word == rule.From {
				matchEnd = wordEnd
			}
		case RuleMember:
			if word == rule.From && isMemberAccess(src, i) {
				matchEnd = wordEnd
			}
		case RuleCall:
			if word == fromWords[0] && !isMemberAccess(src, i) {
				matchEnd = matchCall(src, wordEnd, seg.end, fromWords[1:])
			}
		}
		if matchEnd < 0 {
			i = wordEnd
			continue
		}
		out = append(out, src[last:i]...)
		out = append(out, rule.To...)
		last = matchEnd
		i = matchEnd
	}
	if out == nil {
		return nil
	}
	return append(out, src[last:seg.end]...)
}

// matchCall checks that the remaining words of a call target follow pos,
// separated by whitespace, and that a "(" comes next. It returns the end of
// the matched target (before the parenthesis) or -1.
func matchCall(src []byte, pos int, limit int, rest []string) int {
	for _, want := range rest {
		j := skipSpace(src, pos, limit)
		if j == pos || j >= limit {
			return -1
		}
		end := identEnd(src, j, limit)
		if string(src[j:end]) != want {
			return -1
		}
		pos = end
	}
	j := skipSpace(src, pos, limit)
	if j >= limit || src[j] != '(' {
		return -1
	}
	return pos
}

func rewriteSpecifier(text []byte, rule Rule) []byte {
	if len(text) < 2 {
		return nil
	}
	quote := text[0]
	spec := string(text[1 : len(text)-1])
	var rest string
	switch {
	case spec == rule.From:
	case strings.HasPrefix(spec, rule.From+"/"):
		rest = spec[len(rule.From):]
	default:
		return nil
	}
	out := make([]byte, 0, len(rule.To)+len(rest)+2)
	out = append(out, quote)
	out = append(out, rule.To...)
	out = append(out, rest...)
	return append(out, quote)
}

// isSpecifierPosition reports whether the string at segs[idx] is a module
// specifier: it follows "from", "import", "require(" or "import(".
func isSpecifierPosition(src []byte, segs []segment, idx int) bool {
	prev := idx - 1
	for prev >= 0 && segs[prev].kind == segComment {
		prev--
	}
	if prev < 0 || segs[prev].kind != segCode {
		return false
	}
	tail := strings.TrimRight(string(src[segs[prev].start:segs[prev].end]), " \t\r\n")
	if hasWordSuffix(tail, "from") || hasWordSuffix(tail, "import") {
		return true
	}
	if !strings.HasSuffix(tail, "(") {
		return false
	}
	callee := strings.TrimRight(strings.TrimSuffix(tail, "("), " \t")
	return hasWordSuffix(callee, "require") || hasWordSuffix(callee, "import")
}

func hasWordSuffix(text string, word string) bool {
	if !strings.HasSuffix(text, word) {
		return false
	}
	before := len(text) - len(word)
	if before == 0 {
		return true
	}
	c := text[before-1]
	return !isIdentPart(c) && c != '.'
}

// isMemberAccess reports whether the identifier at i is preceded by a single
// "." (optional chaining "?." included, spread "..." excluded).
func isMemberAccess(src []byte, i int) bool {
	j := i - 1
	for j >= 0 && isSpace(src[j]) {
		j--
	}
	if j < 0 || src[j] != '.' {
		return false
	}
	return j == 0 || src[j-1] != '.'
}

func identEnd(src []byte, start int, limit int) int {
	j := start
	for j < limit && isIdentPart(src[j]) {
		j++
	}
	return j
}

func skipSpace(src []byte, pos int, limit int) int {
	for pos < limit && isSpace(src[pos]) {
		pos++
	}
	return pos
}
