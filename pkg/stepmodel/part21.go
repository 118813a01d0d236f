package stepmodel

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Header is the HEADER section of an exchange file.
type Header struct {
	Description   string
	Name          string
	Timestamp     string
	Author        string
	Organization  string
	Preprocessor  string
	Originating   string
	Authorization string
	Schemas       []string
}

// WriteFile writes the members of the graph as an ISO 10303-21 exchange
// file. Members are numbered from 1 in addition order.
func (g *Graph) WriteFile(w io.Writer, h Header) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("failed to validate model: %w", err)
	}
	num := make(map[ID]int, len(g.order))
	for i, id := range g.order {
		num[id] = i + 1
	}

	e := &encoder{num: num}
	e.line("ISO-10303-21;")
	e.line("HEADER;")
	e.line("FILE_DESCRIPTION((" + quote(h.Description) + "),'2;1');")
	e.line(fmt.Sprintf("FILE_NAME(%s,%s,(%s),(%s),%s,%s,%s);",
		quote(h.Name), quote(h.Timestamp), quote(h.Author), quote(h.Organization),
		quote(h.Preprocessor), quote(h.Originating), quote(h.Authorization)))
	schemas := make([]string, len(h.Schemas))
	for i, s := range h.Schemas {
		schemas[i] = quote(s)
	}
	e.line("FILE_SCHEMA((" + strings.Join(schemas, ",") + "));")
	e.line("ENDSEC;")
	e.line("DATA;")
	for _, id := range g.order {
		r, _ := g.Get(id)
		e.b.WriteString("#" + strconv.Itoa(num[id]) + "=")
		if r.IsComplex() {
			parts := slices.Clone(r.Parts)
			slices.SortStableFunc(parts, func(a, b Part) int { return strings.Compare(string(a.Kind), string(b.Kind)) })
			e.b.WriteByte('(')
			for i, p := range parts {
				if i > 0 {
					e.b.WriteByte(' ')
				}
				e.instance(p.Kind, p.Fields)
			}
			e.b.WriteByte(')')
		} else {
			e.instance(r.Kind, r.Fields)
		}
		e.b.WriteString(";\n")
	}
	e.line("ENDSEC;")
	e.line("END-ISO-10303-21;")

	if _, err := io.WriteString(w, e.b.String()); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

type encoder struct {
	b   strings.Builder
	num map[ID]int
}

func (e *encoder) line(s string) {
	e.b.WriteString(s)
	e.b.WriteByte('\n')
}

func (e *encoder) instance(kind Kind, fields []Field) {
	e.b.WriteString(string(kind))
	e.b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			e.b.WriteByte(',')
		}
		e.value(f.Value)
	}
	e.b.WriteByte(')')
}

func (e *encoder) value(v Value) {
	switch x := v.(type) {
	case nil, Null:
		e.b.WriteByte('$')
	case Derived:
		e.b.WriteByte('*')
	case Ref:
		e.ref(ID(x))
	case Refs:
		e.b.WriteByte('(')
		for i, id := range x {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.ref(id)
		}
		e.b.WriteByte(')')
	case Str:
		e.b.WriteString(quote(string(x)))
	case Real:
		e.b.WriteString(FormatReal(float64(x)))
	case Int:
		e.b.WriteString(strconv.Itoa(int(x)))
	case Bool:
		if x {
			e.b.WriteString(".T.")
		} else {
			e.b.WriteString(".F.")
		}
	case Enum:
		e.b.WriteString("." + string(x) + ".")
	case Reals:
		e.b.WriteByte('(')
		for i, f := range x {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.b.WriteString(FormatReal(f))
		}
		e.b.WriteByte(')')
	case Typed:
		e.b.WriteString(x.Type + "(")
		e.value(x.V)
		e.b.WriteByte(')')
	case List:
		e.b.WriteByte('(')
		for i, el := range x {
			if i > 0 {
				e.b.WriteByte(',')
			}
			e.value(el)
		}
		e.b.WriteByte(')')
	}
}

func (e *encoder) ref(id ID) {
	if n, ok := e.num[id]; ok {
		e.b.WriteString("#" + strconv.Itoa(n))
		return
	}
	e.b.WriteByte('$')
}

// FormatReal formats a real the way exchange files require: always with a
// decimal point and an upper-case exponent.
func FormatReal(f float64) string {
	s := strconv.FormatFloat(f, 'G', -1, 64)
	mant, exp, hasExp := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += "."
	}
	if hasExp {
		return mant + "E" + exp
	}
	return mant
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'':
			b.WriteString("''")
		case r == '\\':
			b.WriteString(`\\`)
		case r < 0x20 || r > 0x7e:
			if r > 0xffff {
				fmt.Fprintf(&b, `\X4\%08X\X0\`, r)
			} else {
				fmt.Fprintf(&b, `\X2\%04X\X0\`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
