package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseListLiteral decodes a list literal such as "['a', \"b\"]" into its items.
// Items are quoted strings with backslash escapes or bare scalars (numbers, None, True).
// A blank cell decodes to an empty list.
func ParseListLiteral(s string) ([]string, error) {
	p := &listParser{src: s}
	p.skipSpace()
	if p.done() {
		return []string{}, nil
	}
	return p.parse()
}

type listParser struct {
	src string
	pos int
}

func (p *listParser) parse() ([]string, error) {
	if !p.consume('[') {
		return nil, p.errorf("expected '['")
	}
	items := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, p.errorf("expected ',' or ']'")
	}
	p.skipSpace()
	if !p.done() {
		return nil, p.errorf("unexpected trailing text")
	}
	return items, nil
}

func (p *listParser) item() (string, error) {
	if p.done() {
		return "", p.errorf("unterminated list")
	}
	switch c := p.src[p.pos]; c {
	case '\'', '"':
		return p.quoted(c)
	default:
		return p.bare()
	}
}

func (p *listParser) quoted(quote byte) (string, error) {
	start := p.pos
	p.pos++
	var sb strings.Builder
	for !p.done() {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if err := p.escape(&sb); err != nil {
				return "", err
			}
		default:
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			sb.WriteRune(r)
			p.pos += size
		}
	}
	p.pos = start
	return "", p.errorf("unterminated string")
}

func (p *listParser) escape(sb *strings.Builder) error {
	p.pos++ // backslash
	if p.done() {
		return p.errorf("dangling escape")
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '\\', '\'', '"':
		sb.WriteByte(c)
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'x':
		return p.codepoint(sb, 2)
	case 'u':
		return p.codepoint(sb, 4)
	case 'U':
		return p.codepoint(sb, 8)
	default:
		// Unknown escapes are kept verbatim.
		sb.WriteByte('\\')
		sb.WriteByte(c)
	}
	return nil
}

func (p *listParser) codepoint(sb *strings.Builder, digits int) error {
	if p.pos+digits > len(p.src) {
		return p.errorf("short escape sequence")
	}
	v, err := strconv.ParseUint(p.src[p.pos:p.pos+digits], 16, 32)
	if err != nil || !utf8.ValidRune(rune(v)) {
		return p.errorf("invalid escape sequence")
	}
	sb.WriteRune(rune(v))
	p.pos += digits
	return nil
}

func (p *listParser) bare() (string, error) {
	start := p.pos
	for !p.done() {
		c := p.src[p.pos]
		if c == ',' || c == ']' || c == ' ' || c == '\t' {
			break
		}
		if !isBareByte(c) {
			return "", p.errorf("unexpected character %q", c)
		}
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected list item")
	}
	return p.src[start:p.pos], nil
}

func isBareByte(c byte) bool {
	return c == '_' || c == '.' || c == '-' || c == '+' ||
		(c < utf8.RuneSelf && (unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))))
}

func (p *listParser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *listParser) consume(c byte) bool {
	if !p.done() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *listParser) done() bool {
	return p.pos >= len(p.src)
}

func (p *listParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedList, p.pos, fmt.Sprintf(format, args...))
}
