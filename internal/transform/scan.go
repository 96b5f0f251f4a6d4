package transform

import (
	"bytes"

	"github.com/conn-castle/upshift/internal/messages"
)

type segmentKind int

const (
	segCode segmentKind = iota
	segString
	segTemplate
	segComment
	segRegexp
)

// segment is a half-open byte range [start, end) of one lexical kind.
type segment struct {
	kind  segmentKind
	start int
	end   int
}

// scanError is a lexical failure at a byte offset.
type scanError struct {
	offset  int
	message string
}

// regexpKeywords are the keywords after which "/" starts a regular expression.
var regexpKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "case": {}, "do": {}, "else": {}, "in": {},
	"instanceof": {}, "new": {}, "void": {}, "delete": {}, "throw": {},
	"yield": {}, "await": {}, "of": {},
}

// scanner splits JavaScript/TypeScript source into code, string, template,
// comment and regexp segments. It is not a parser: it tracks just enough
// state to keep rewrites out of literals and comments.
type scanner struct {
	src  []byte
	segs []segment
	// braces holds, per open template expression, the depth of "{" nesting
	// inside the current "${ ... }".
	braces    []int
	codeStart int
}

func scan(src []byte) ([]segment, *scanError) {
	s := &scanner{src: src}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.segs, nil
}

func (s *scanner) flushCode(end int) {
	if end > s.codeStart {
		s.segs = append(s.segs, segment{kind: segCode, start: s.codeStart, end: end})
	}
}

func (s *scanner) emit(kind segmentKind, start int, end int) {
	s.segs = append(s.segs, segment{kind: kind, start: start, end: end})
	s.codeStart = end
}

func (s *scanner) run() *scanError {
	src := s.src
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			s.flushCode(i)
			end := bytes.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			s.emit(segComment, i, end)
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			s.flushCode(i)
			end := bytes.Index(src[i+2:], []byte("*/"))
			if end < 0 {
				return &scanError{offset: i, message: messages.EngineUnterminatedComment}
			}
			end += i + 4
			s.emit(segComment, i, end)
			i = end
		case c == '/' && s.regexpAllowed(i):
			end, err := s.scanRegexp(i)
			if err != nil {
				return err
			}
			s.flushCode(i)
			s.emit(segRegexp, i, end)
			i = end
		case (c == '\'' || c == '"') && !(i > 0 && isIdentPart(src[i-1])):
			// A quote glued to a word (JSX text such as "Don't") is not a literal.
			end, err := s.scanString(i, c)
			if err != nil {
				return err
			}
			s.flushCode(i)
			s.emit(segString, i, end)
			i = end
		case c == '`':
			s.flushCode(i)
			end, err := s.scanTemplate(i)
			if err != nil {
				return err
			}
			i = end
		case c == '{':
			if n := len(s.braces); n > 0 {
				s.braces[n-1]++
			}
			i++
		case c == '}':
			n := len(s.braces)
			if n > 0 && s.braces[n-1] == 0 {
				s.braces = s.braces[:n-1]
				s.flushCode(i)
				end, err := s.scanTemplate(i)
				if err != nil {
					return err
				}
				i = end
				continue
			}
			if n > 0 {
				s.braces[n-1]--
			}
			i++
		default:
			i++
		}
	}
	if len(s.braces) > 0 {
		return &scanError{offset: len(src), message: messages.EngineUnbalancedTemplate}
	}
	s.flushCode(len(src))
	return nil
}

func (s *scanner) scanString(start int, quote byte) (int, *scanError) {
	src := s.src
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\n':
			return 0, &scanError{offset: start, message: messages.EngineUnterminatedString}
		case quote:
			return j + 1, nil
		}
	}
	return 0, &scanError{offset: start, message: messages.EngineUnterminatedString}
}

// scanTemplate scans template text starting at a "`" or at the "}" closing a
// template expression. It emits the text segment and returns the offset after
// the closing "`" or after an opening "${".
func (s *scanner) scanTemplate(start int) (int, *scanError) {
	src := s.src
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '`':
			s.emit(segTemplate, start, j+1)
			return j + 1, nil
		case '$':
			if j+1 < len(src) && src[j+1] == '{' {
				s.emit(segTemplate, start, j+2)
				s.braces = append(s.braces, 0)
				return j + 2, nil
			}
		}
	}
	return 0, &scanError{offset: start, message: messages.EngineUnterminatedTemplate}
}

func (s *scanner) scanRegexp(start int) (int, *scanError) {
	src := s.src
	inClass := false
	for j := start + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return 0, &scanError{offset: start, message: messages.EngineUnterminatedRegexp}
		case '/':
			if !inClass {
				return j + 1, nil
			}
		}
	}
	return 0, &scanError{offset: start, message: messages.EngineUnterminatedRegexp}
}

// regexpAllowed reports whether a "/" at offset i starts a regular expression
// rather than a division, judged by the previous significant character.
func (s *scanner) regexpAllowed(i int) bool {
	src := s.src
	j := i - 1
	for j >= 0 && isSpace(src[j]) {
		j--
	}
	if j < 0 {
		return true
	}
	c := src[j]
	if isIdentPart(c) {
		end := j + 1
		for j >= 0 && isIdentPart(src[j]) {
			j--
		}
		_, keyword := regexpKeywords[string(src[j+1:end])]
		return keyword
	}
	switch c {
	case ')', ']', '}', '\'', '"', '`':
		return false
	case '<':
		// JSX closing tag.
		return false
	}
	return true
}

func lineAt(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isIdentifier(name string) bool {
	if name == "" || !isIdentStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isIdentPart(name[i]) {
			return false
		}
	}
	return true
}
