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

// Package callin holds the M routine and call-in table that implement the wrapper's operations
// inside GT.M, and validates user-supplied call-in tables against the names the wrapper calls.
package callin

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Routine is the source of the M routine gtmgo.m that implements each call-in entry point.
//
//go:embed gtmgo.m
var Routine string

// Table is the call-in table mapping each call-in name to its entry point in gtmgo.m.
//
//go:embed gtmgo.ci
var Table string

// RoutineFile and TableFile are the file names written by Install.
const (
	RoutineFile = "gtmgo.m"
	TableFile   = "gtmgo.ci"
)

// Required lists every call-in name the wrapper invokes with the number of parameters each takes.
var Required = map[string]int{
	"gtmget":    3,
	"gtmset":    3,
	"gtmkill":   2,
	"gtmorder":  3,
	"gtmquery":  3,
	"gtmlock":   3,
	"gtmunlock": 2,
	"gtmxecute": 2,
}

// Param is one parameter of a call-in prototype, e.g. O:gtm_string_t*.
type Param struct {
	Direction string // I, O or IO
	Type      string // C type name including any trailing '*'
}

func (p Param) String() string {
	return p.Direction + ":" + p.Type
}

// Prototype is one line of a call-in table.
type Prototype struct {
	Name       string // call-in name passed to gtm_cip()
	ReturnType string // "void" or a C type
	Entry      string // M entry reference, e.g. get^gtmgo
	Params     []Param
	Line       int
}

// ParseError reports a malformed line in a call-in table.
type ParseError struct {
	Line int
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("call-in table line %d (%s): %s", e.Line, e.Text, e.Msg)
}

var (
	commentPattern   = regexp.MustCompile(`//.*`)
	prototypePattern = regexp.MustCompile(`^\s*([^:\s]+)\s*:\s*([\w]+\s*\*?)\s+([^(\s]+)\s*\(([^)]*)\)\s*$`)
	entryPattern     = regexp.MustCompile(`^[%A-Za-z0-9]*\^?[%A-Za-z][A-Za-z0-9]*$`)
	paramPattern     = regexp.MustCompile(`^\s*(I|O|IO)\s*:\s*([\w]+)\s*(\*?)\s*$`)
)

// parsePrototype parses a single call-in table line. Blank or pure comment lines return nil.
func parsePrototype(line string, lineno int) (*Prototype, error) {
	text := strings.TrimSpace(commentPattern.ReplaceAllString(line, ""))
	if text == "" {
		return nil, nil
	}
	m := prototypePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, &ParseError{lineno, text, "line does not match format 'name: ret_type entry^routine(dir:type, ...)'"}
	}
	proto := Prototype{Name: m[1], ReturnType: strings.ReplaceAll(m[2], " ", ""), Entry: m[3], Line: lineno}
	if !entryPattern.MatchString(proto.Entry) {
		return nil, &ParseError{lineno, text, fmt.Sprintf("invalid M entry reference %q", proto.Entry)}
	}
	params := strings.TrimSpace(m[4])
	if params == "" {
		return &proto, nil
	}
	for i, p := range strings.Split(params, ",") {
		pm := paramPattern.FindStringSubmatch(p)
		if pm == nil {
			return nil, &ParseError{lineno, text, fmt.Sprintf("parameter %d (%s) must have the form dir:type", i+1, strings.TrimSpace(p))}
		}
		proto.Params = append(proto.Params, Param{Direction: pm[1], Type: pm[2] + pm[3]})
	}
	return &proto, nil
}

// ParseTable parses the text of a call-in table into its prototypes.
func ParseTable(text string) ([]Prototype, error) {
	var protos []Prototype
	seen := make(map[string]int)
	for i, line := range strings.Split(text, "\n") {
		proto, err := parsePrototype(line, i+1)
		if err != nil {
			return nil, err
		}
		if proto == nil {
			continue
		}
		if prev, ok := seen[proto.Name]; ok {
			return nil, &ParseError{i + 1, strings.TrimSpace(line), fmt.Sprintf("duplicate call-in name %s (first defined on line %d)", proto.Name, prev)}
		}
		seen[proto.Name] = i + 1
		protos = append(protos, *proto)
	}
	return protos, nil
}

// expected holds the prototypes of the embedded Table by call-in name.
var expected = func() map[string]Prototype {
	protos, err := ParseTable(Table)
	if err != nil {
		panic(err)
	}
	m := make(map[string]Prototype, len(protos))
	for _, p := range protos {
		m[p.Name] = p
	}
	return m
}()

// Validate checks that protos declares every name in Required with the parameter directions and types
// of the embedded Table.
func Validate(protos []Prototype) error {
	byName := make(map[string]Prototype, len(protos))
	for _, p := range protos {
		byName[p.Name] = p
	}
	var missing []string
	for name, nparams := range Required {
		p, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if len(p.Params) != nparams {
			return fmt.Errorf("call-in %s on line %d has %d parameters but the wrapper passes %d", name, p.Line, len(p.Params), nparams)
		}
		for i, want := range expected[name].Params {
			if got := p.Params[i]; got != want {
				return fmt.Errorf("call-in %s on line %d parameter %d is %s but the wrapper passes %s", name, p.Line, i+1, got, want)
			}
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("call-in table does not declare %s", strings.Join(missing, ", "))
	}
	return nil
}

// Load reads, parses and validates the call-in table file at path.
func Load(path string) ([]Prototype, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	protos, err := ParseTable(string(text))
	if err != nil {
		return nil, err
	}
	if err := Validate(protos); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return protos, nil
}

// Install writes gtmgo.m and gtmgo.ci into dir and returns the path of the call-in table.
// Dir must then appear in gtmroutines so the engine can compile and link gtmgo.m on first use.
func Install(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, RoutineFile), []byte(Routine), 0o644); err != nil {
		return "", err
	}
	ciPath := filepath.Join(dir, TableFile)
	if err := os.WriteFile(ciPath, []byte(Table), 0o644); err != nil {
		return "", err
	}
	return ciPath, nil
}
