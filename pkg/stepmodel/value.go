package stepmodel

// Value is a field value of a record.
type Value interface {
	isValue()
}

type (
	// Ref references another record.
	Ref ID
	// Refs is an aggregate of references.
	Refs []ID
	// Str is a string.
	Str string
	// Real is a real number.
	Real float64
	// Int is an integer.
	Int int
	// Bool is a boolean or logical.
	Bool bool
	// Enum is an enumeration literal, written .NAME.
	Enum string
	// Reals is an aggregate of reals.
	Reals []float64
	// Null is an unset optional field, written $.
	Null struct{}
	// Derived is a field redeclared as derived in a subtype, written *.
	Derived struct{}
	// Typed is a value wrapped in a defined type, e.g. LENGTH_MEASURE(1.).
	Typed struct {
		Type string
		V    Value
	}
	// List is a heterogeneous aggregate, e.g. a list of select values.
	List []Value
)

func (Ref) isValue()     {}
func (Refs) isValue()    {}
func (Str) isValue()     {}
func (Real) isValue()    {}
func (Int) isValue()     {}
func (Bool) isValue()    {}
func (Enum) isValue()    {}
func (Reals) isValue()   {}
func (Null) isValue()    {}
func (Derived) isValue() {}
func (Typed) isValue()   {}
func (List) isValue()    {}

// Field is a named field of a record.
type Field struct {
	Name  string
	Value Value
}

// F builds a field.
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// RefsOf converts ids to a reference aggregate.
func RefsOf(ids ...ID) Refs { return append(Refs(nil), ids...) }

// refsIn appends the references held by v to dst.
func refsIn(dst []ID, v Value) []ID {
	switch x := v.(type) {
	case Ref:
		if x != 0 {
			dst = append(dst, ID(x))
		}
	case Refs:
		for _, id := range x {
			if id != 0 {
				dst = append(dst, id)
			}
		}
	case Typed:
		dst = refsIn(dst, x.V)
	case List:
		for _, e := range x {
			dst = refsIn(dst, e)
		}
	}
	return dst
}

// compatible reports whether b may replace a during an upgrade.
func compatible(a, b Value) bool {
	switch a.(type) {
	case Null, Derived, nil:
		return true
	}
	switch b.(type) {
	case Null, Derived:
		return true
	}
	switch a.(type) {
	case Ref:
		_, ok := b.(Ref)
		return ok
	case Refs:
		_, ok := b.(Refs)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case Real, Int:
		switch b.(type) {
		case Real, Int:
			return true
		}
		return false
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Enum:
		_, ok := b.(Enum)
		return ok
	}
	return true
}
