//////////////////////////////////////////////////////////////////
//
// Copyright (c) 2026 YottaDB LLC and/or its subsidiaries.
// All rights reserved.
//
//	This source code contains the intellectual property
//	of its copyright holder(s), and is made available
//	under a license.  If you do not know the terms of
//	the license, please stop and do not read further.
//
//////////////////////////////////////////////////////////////////

// Package mref builds and splits M entity references such as ^x("a",1) without calling the engine.
//
// The GT.M call-in wrapper passes every database or local variable name to M as a single string
// which M evaluates using name indirection (@name). This package produces those strings from a
// variable name and Go subscript values, quoting each subscript the way M would display it.
package mref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// canonicalNumber matches M canonic numbers: no leading zeros, no trailing fractional zeros, no leading '+'.
var canonicalNumber = regexp.MustCompile(`^(0|-?([1-9][0-9]*(\.[0-9]*[1-9])?|\.[0-9]*[1-9]))$`)

// varName matches an unsubscripted local or global variable name.
var varName = regexp.MustCompile(`^\^?[%A-Za-z][A-Za-z0-9]*$`)

// The engine holds numbers to maxDigits significant digits and accepts magnitudes below 1E47 down to 1E-43.
// Longer digit strings are string subscripts.
const (
	maxDigits        = 18
	maxIntegerDigits = 47
	maxLeadingZeros  = 42 // of the fraction, when there is no integer part
)

// IsCanonical reports whether M would treat s as a canonic number when used as a subscript.
// M writes 0.5 as .5 so "0.5" is not canonic.
func IsCanonical(s string) bool {
	if !canonicalNumber.MatchString(s) {
		return false
	}
	intPart, frac, _ := strings.Cut(strings.TrimPrefix(s, "-"), ".")
	if len(intPart) > maxIntegerDigits {
		return false
	}
	if intPart == "" && len(frac)-len(strings.TrimLeft(frac, "0")) > maxLeadingZeros {
		return false
	}
	significant := strings.Trim(intPart+frac, "0")
	return len(significant) <= maxDigits
}

// printable reports whether b can appear inside an M string literal as itself.
func printable(b byte) bool {
	return b >= ' ' && b <= '~'
}

// Quote returns s as M would display it in ZWRITE format: canonic numbers unchanged, other strings
// quoted with embedded quotes doubled, and unprintable bytes rendered using $C().
func Quote(s string) string {
	if IsCanonical(s) {
		return s
	}
	if s == "" {
		return `""`
	}
	var parts []string
	i := 0
	for i < len(s) {
		j := i
		if printable(s[i]) {
			for j < len(s) && printable(s[j]) {
				j++
			}
			parts = append(parts, `"`+strings.ReplaceAll(s[i:j], `"`, `""`)+`"`)
		} else {
			var codes []string
			for j < len(s) && !printable(s[j]) {
				codes = append(codes, strconv.Itoa(int(s[j])))
				j++
			}
			parts = append(parts, "$C("+strings.Join(codes, ",")+")")
		}
		i = j
	}
	return strings.Join(parts, "_")
}

// Build returns the entity reference for variable name with the given subscripts, e.g.
// Build("^x", "a", "1") returns ^x("a",1).
func Build(name string, subs ...string) string {
	if len(subs) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, sub := range subs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Quote(sub))
	}
	b.WriteByte(')')
	return b.String()
}

// Child returns parent with one more subscript appended. Parent may already be subscripted.
// Child("^x", "") returns ^x("") which is the usual starting point for $ORDER traversal.
func Child(parent, sub string) string {
	if strings.HasSuffix(parent, ")") {
		return parent[:len(parent)-1] + "," + Quote(sub) + ")"
	}
	return Build(parent, sub)
}

// Split decomposes an entity reference into its variable name and unquoted subscript values.
// It accepts the forms returned by $QUERY: quoted strings, canonic numbers and $C() concatenations.
func Split(ref string) (name string, subs []string, err error) {
	open := strings.IndexByte(ref, '(')
	if open < 0 {
		if !varName.MatchString(ref) {
			return "", nil, fmt.Errorf("invalid variable name %q", ref)
		}
		return ref, nil, nil
	}
	name = ref[:open]
	if !varName.MatchString(name) {
		return "", nil, fmt.Errorf("invalid variable name %q", name)
	}
	if !strings.HasSuffix(ref, ")") {
		return "", nil, fmt.Errorf("unterminated subscript list in %q", ref)
	}
	p := parser{s: ref[open+1 : len(ref)-1]}
	for {
		sub, err := p.subscript()
		if err != nil {
			return "", nil, fmt.Errorf("%s in %q", err, ref)
		}
		subs = append(subs, sub)
		if p.eof() {
			break
		}
		if p.s[p.pos] != ',' {
			return "", nil, fmt.Errorf("expected ',' at offset %d in %q", open+1+p.pos, ref)
		}
		p.pos++
	}
	return name, subs, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.s)
}

// subscript parses one subscript expression: a number, or string pieces joined by '_'.
func (p *parser) subscript() (string, error) {
	if p.eof() {
		return "", fmt.Errorf("missing subscript")
	}
	c := p.s[p.pos]
	if c == '-' || c == '.' || (c >= '0' && c <= '9') {
		start := p.pos
		for !p.eof() && p.s[p.pos] != ',' {
			p.pos++
		}
		num := p.s[start:p.pos]
		if !IsCanonical(num) {
			return "", fmt.Errorf("non-canonic number %s", num)
		}
		return num, nil
	}
	var b strings.Builder
	for {
		if err := p.piece(&b); err != nil {
			return "", err
		}
		if p.eof() || p.s[p.pos] != '_' {
			return b.String(), nil
		}
		p.pos++
	}
}

// piece parses a quoted string or a $C(n,...) call and appends its value to b.
func (p *parser) piece(b *strings.Builder) error {
	switch {
	case strings.HasPrefix(p.s[p.pos:], `"`):
		p.pos++
		for {
			if p.eof() {
				return fmt.Errorf("unterminated string")
			}
			c := p.s[p.pos]
			p.pos++
			if c == '"' {
				if !p.eof() && p.s[p.pos] == '"' {
					b.WriteByte('"')
					p.pos++
					continue
				}
				return nil
			}
			b.WriteByte(c)
		}
	case strings.HasPrefix(strings.ToUpper(p.s[p.pos:]), "$C("):
		p.pos += 3
		end := strings.IndexByte(p.s[p.pos:], ')')
		if end < 0 {
			return fmt.Errorf("unterminated $C()")
		}
		for _, code := range strings.Split(p.s[p.pos:p.pos+end], ",") {
			n, err := strconv.Atoi(code)
			if err != nil || n < 0 || n > 255 {
				return fmt.Errorf("invalid $C() argument %q", code)
			}
			b.WriteByte(byte(n))
		}
		p.pos += end + 1
		return nil
	}
	return fmt.Errorf("unexpected character %q at offset %d", p.s[p.pos], p.pos)
}
