// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package params

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/pllsim/siglib"
	"github.com/pkg/errors"
)

// token types
const (
	tokEOF = iota
	tokRaw
	tokIdent
	tokNumber
	tokEqual
	tokComma
)

type token struct {
	typ   int
	pos   int
	value string
}

type lexer struct {
	in  []rune
	pos int
}

func (l *lexer) lex() token {
	for l.pos < len(l.in) && unicode.IsSpace(l.in[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.in) {
		return token{tokEOF, l.pos, ""}
	}
	start := l.pos
	r := l.in[l.pos]
	switch {
	case unicode.IsLetter(r) || r == '_':
		for l.pos < len(l.in) && isIdent(l.in[l.pos]) {
			l.pos++
		}
		return token{tokIdent, start, string(l.in[start:l.pos])}
	case r == '-' || r == '+' || r == '.' || '0' <= r && r <= '9':
		l.pos++
		for l.pos < len(l.in) && isNumber(l.in[l.pos], l.in[l.pos-1]) {
			l.pos++
		}
		return token{tokNumber, start, string(l.in[start:l.pos])}
	case r == '=':
		l.pos++
		return token{tokEqual, start, "="}
	case r == ',':
		l.pos++
		return token{tokComma, start, ","}
	}
	l.pos++
	return token{tokRaw, start, string(r)}
}

func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isNumber(r, prev rune) bool {
	switch {
	case '0' <= r && r <= '9', r == '.', r == 'e', r == 'E':
		return true
	case r == '-' || r == '+':
		return prev == 'e' || prev == 'E'
	}
	return false
}

// An Assignment is a single name=value pair.
//
type Assignment struct {
	Name  string
	Value float64
}

// ParseAssignments parses a comma separated list of parameter assignments:
//
//	ParseAssignments("kpd=3, fref = 5.5, noise=1e-2")
//
// Names are case insensitive and returned in lower case. An empty string
// yields no assignments.
//
func ParseAssignments(s string) ([]Assignment, error) {
	var out []Assignment
	l := &lexer{in: []rune(s)}

	t := l.lex()
	if t.typ == tokEOF {
		return nil, nil
	}
	for {
		if t.typ != tokIdent {
			return nil, parseError(s, t.pos, "expected parameter name")
		}
		name := strings.ToLower(t.value)
		if t = l.lex(); t.typ != tokEqual {
			return nil, parseError(s, t.pos, "expected '='")
		}
		if t = l.lex(); t.typ != tokNumber {
			return nil, parseError(s, t.pos, "expected number")
		}
		v, err := strconv.ParseFloat(t.value, 64)
		if err != nil {
			return nil, parseError(s, t.pos, "invalid number "+strconv.Quote(t.value))
		}
		out = append(out, Assignment{name, v})

		switch t = l.lex(); t.typ {
		case tokEOF:
			return out, nil
		case tokComma:
			t = l.lex()
		default:
			return nil, parseError(s, t.pos, "expected comma or end of input")
		}
	}
}

// ParseRange parses a sweep range of the form "name=from..to:count" and
// returns the parameter name and count evenly spaced values.
//
//	ParseRange("kvco=0..30:4") // "kvco", []float64{0, 10, 20, 30}
//
func ParseRange(s string) (string, []float64, error) {
	i := strings.IndexRune(s, '=')
	if i < 0 {
		return "", nil, errors.Errorf("in %q: missing '='", s)
	}
	name := strings.ToLower(strings.TrimSpace(s[:i]))
	if name == "" {
		return "", nil, parseError(s, 0, "expected parameter name")
	}
	r := s[i+1:]
	j := strings.Index(r, "..")
	k := strings.LastIndex(r, ":")
	if j < 0 || k < j {
		return "", nil, errors.Errorf("in %q: expected from..to:count", s)
	}
	from, err := strconv.ParseFloat(strings.TrimSpace(r[:j]), 64)
	if err != nil {
		return "", nil, errors.Wrapf(err, "in %q: bad range start", s)
	}
	to, err := strconv.ParseFloat(strings.TrimSpace(r[j+2:k]), 64)
	if err != nil {
		return "", nil, errors.Wrapf(err, "in %q: bad range end", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(r[k+1:]))
	if err != nil {
		return "", nil, errors.Wrapf(err, "in %q: bad count", s)
	}
	if n < 1 {
		return "", nil, errors.Errorf("in %q: count must be >= 1", s)
	}
	vs := siglib.Linspace(from, to, n)
	return name, vs, nil
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
