// Package stepmodel is an append-only entity graph for STEP exchange files.
//
// Records live in an arena indexed by stable ids. A record is created
// detached and becomes a member of the model when added; only members are
// written and only members take part in reverse lookups. A member may be
// upgraded in place to a subtype, keeping its id so that every reference
// to it stays valid.
package stepmodel

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// Sentinel errors.
var (
	ErrUnknownRecord       = errors.New("unknown record")
	ErrIncompatibleUpgrade = errors.New("incompatible upgrade")
	ErrNotMember           = errors.New("record is not in the model")
)

// ID identifies a record. The zero ID is never assigned.
type ID int

// String formats the id as an instance name, e.g. "#12".
func (id ID) String() string { return "#" + strconv.Itoa(int(id)) }

// Part is one partial type of a complex record.
type Part struct {
	Kind   Kind
	Fields []Field
}

// Record is an entity instance. Simple records carry Fields; complex
// records carry Parts and no Fields.
type Record struct {
	ID     ID
	Kind   Kind
	Fields []Field
	Parts  []Part
}

// IsComplex reports whether the record is written as a complex instance.
func (r *Record) IsComplex() bool { return len(r.Parts) > 0 }

// Field returns the first field with the given name, searching parts in order.
func (r *Record) Field(name string) (Value, bool) {
	if fs, i := r.locate(name); fs != nil {
		return (*fs)[i].Value, true
	}
	return nil, false
}

func (r *Record) locate(name string) (*[]Field, int) {
	if i := indexOf(r.Fields, name); i >= 0 {
		return &r.Fields, i
	}
	for p := range r.Parts {
		if i := indexOf(r.Parts[p].Fields, name); i >= 0 {
			return &r.Parts[p].Fields, i
		}
	}
	return nil, -1
}

func (r *Record) refs() []ID {
	var out []ID
	for _, f := range r.Fields {
		out = refsIn(out, f.Value)
	}
	for _, p := range r.Parts {
		for _, f := range p.Fields {
			out = refsIn(out, f.Value)
		}
	}
	return out
}

func indexOf(fs []Field, name string) int {
	for i, f := range fs {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Graph is the output model.
type Graph struct {
	records  []*Record
	order    []ID
	pos      map[ID]int
	sharings map[ID][]ID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		pos:      make(map[ID]int),
		sharings: make(map[ID][]ID),
	}
}

// New creates a detached record.
func (g *Graph) New(kind Kind, fields ...Field) ID {
	id := ID(len(g.records) + 1)
	g.records = append(g.records, &Record{ID: id, Kind: kind, Fields: fields})
	return id
}

// NewComplex creates a detached complex record.
func (g *Graph) NewComplex(kind Kind, parts ...Part) ID {
	id := ID(len(g.records) + 1)
	g.records = append(g.records, &Record{ID: id, Kind: kind, Parts: parts})
	return id
}

// Create creates a record and adds it with everything it references.
func (g *Graph) Create(kind Kind, fields ...Field) ID {
	id := g.New(kind, fields...)
	g.mustAdd(id)
	return id
}

// CreateComplex creates a complex record and adds it with its references.
func (g *Graph) CreateComplex(kind Kind, parts ...Part) ID {
	id := g.NewComplex(kind, parts...)
	g.mustAdd(id)
	return id
}

// mustAdd adds a record created by this graph; it only fails on
// references to unknown ids, which callers never construct.
func (g *Graph) mustAdd(id ID) {
	if err := g.AddWithRefs(id); err != nil {
		panic(err)
	}
}

// Get returns the record with the given id. The record must not be modified
// directly; use SetField, AppendRefs or Upgrade.
func (g *Graph) Get(id ID) (*Record, error) {
	if id <= 0 || int(id) > len(g.records) {
		return nil, fmt.Errorf("record #%d: %w", id, ErrUnknownRecord)
	}
	return g.records[id-1], nil
}

// Kind returns the kind of a record, or "" if it does not exist.
func (g *Graph) Kind(id ID) Kind {
	r, err := g.Get(id)
	if err != nil {
		return ""
	}
	return r.Kind
}

// IsKind reports whether the record is of the given kind or a subtype.
func (g *Graph) IsKind(id ID, kind Kind) bool { return IsSubtype(g.Kind(id), kind) }

// Field returns a field value of a record.
func (g *Graph) Field(id ID, name string) (Value, bool) {
	r, err := g.Get(id)
	if err != nil {
		return nil, false
	}
	return r.Field(name)
}

// RefField returns a reference field of a record.
func (g *Graph) RefField(id ID, name string) (ID, bool) {
	v, ok := g.Field(id, name)
	if !ok {
		return 0, false
	}
	ref, ok := v.(Ref)
	return ID(ref), ok && ref != 0
}

// Contains reports whether the record is a member of the model.
func (g *Graph) Contains(id ID) bool {
	_, ok := g.pos[id]
	return ok
}

// Len returns the number of members.
func (g *Graph) Len() int { return len(g.order) }

// Members returns the member ids in addition order.
func (g *Graph) Members() []ID { return slices.Clone(g.order) }

// ByKind returns the members of the given kind or its subtypes, in addition order.
func (g *Graph) ByKind(kind Kind) []ID {
	var out []ID
	for _, id := range g.order {
		if g.IsKind(id, kind) {
			out = append(out, id)
		}
	}
	return out
}

// Add makes a single record a member. Its references are not followed.
func (g *Graph) Add(id ID) error {
	r, err := g.Get(id)
	if err != nil {
		return err
	}
	if g.Contains(id) {
		return nil
	}
	g.pos[id] = len(g.order)
	g.order = append(g.order, id)
	g.link(id, r.refs())
	return nil
}

// AddWithRefs makes the record and every record it references, transitively,
// members. Adding a member again is a no-op.
func (g *Graph) AddWithRefs(id ID) error {
	if _, err := g.Get(id); err != nil {
		return err
	}
	visiting := make(map[ID]bool)
	var visit func(ID) error
	visit = func(cur ID) error {
		if g.Contains(cur) || visiting[cur] {
			return nil
		}
		visiting[cur] = true
		r, err := g.Get(cur)
		if err != nil {
			return err
		}
		for _, ref := range r.refs() {
			if err := visit(ref); err != nil {
				return fmt.Errorf("failed to add reference of #%d: %w", cur, err)
			}
		}
		return g.Add(cur)
	}
	return visit(id)
}

// link records id as sharing each of refs. Referenced records that are not
// members yet get the entry too so that lookups see it once they are added.
func (g *Graph) link(id ID, refs []ID) {
	for _, ref := range refs {
		if !slices.Contains(g.sharings[ref], id) {
			g.sharings[ref] = append(g.sharings[ref], id)
		}
	}
}

func (g *Graph) unlink(id ID, refs []ID) {
	for _, ref := range refs {
		g.sharings[ref] = slices.DeleteFunc(g.sharings[ref], func(x ID) bool { return x == id })
	}
}

// Sharings returns the members referencing id directly, in addition order.
func (g *Graph) Sharings(id ID) []ID {
	var out []ID
	for _, s := range g.sharings[id] {
		if g.Contains(s) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b ID) int { return g.pos[a] - g.pos[b] })
	return out
}

// Shareds returns the distinct records id references, in field order.
func (g *Graph) Shareds(id ID) []ID {
	r, err := g.Get(id)
	if err != nil {
		return nil
	}
	var out []ID
	for _, ref := range r.refs() {
		if !slices.Contains(out, ref) {
			out = append(out, ref)
		}
	}
	return out
}

// SetField sets or appends a field. References added to a member are
// added to the model.
func (g *Graph) SetField(id ID, name string, v Value) error {
	r, err := g.Get(id)
	if err != nil {
		return err
	}
	before := r.refs()
	if fs, i := r.locate(name); fs != nil {
		(*fs)[i].Value = v
	} else if r.IsComplex() {
		last := &r.Parts[len(r.Parts)-1]
		last.Fields = append(last.Fields, F(name, v))
	} else {
		r.Fields = append(r.Fields, F(name, v))
	}
	return g.relink(id, before)
}

// AppendRefs appends references to an aggregate field, creating it if needed.
func (g *Graph) AppendRefs(id ID, name string, refs ...ID) error {
	r, err := g.Get(id)
	if err != nil {
		return err
	}
	var cur Refs
	if v, ok := r.Field(name); ok {
		existing, ok := v.(Refs)
		if !ok {
			return fmt.Errorf("field %s of #%d is not an aggregate of references", name, id)
		}
		cur = existing
	}
	return g.SetField(id, name, append(slices.Clone(cur), refs...))
}

// Upgrade replaces the kind of a record by a subtype, keeping its id and
// fields. Extra fields are appended, or replace fields of the same name
// when their values are of a compatible type.
func (g *Graph) Upgrade(id ID, kind Kind, extra ...Field) error {
	r, err := g.Get(id)
	if err != nil {
		return err
	}
	if r.IsComplex() || !IsSubtype(kind, r.Kind) {
		return fmt.Errorf("cannot upgrade #%d from %s to %s: %w", id, r.Kind, kind, ErrIncompatibleUpgrade)
	}
	for _, f := range extra {
		if i := indexOf(r.Fields, f.Name); i >= 0 && !compatible(r.Fields[i].Value, f.Value) {
			return fmt.Errorf("cannot upgrade #%d: field %s: %w", id, f.Name, ErrIncompatibleUpgrade)
		}
	}
	before := r.refs()
	r.Kind = kind
	for _, f := range extra {
		if i := indexOf(r.Fields, f.Name); i >= 0 {
			r.Fields[i].Value = f.Value
		} else {
			r.Fields = append(r.Fields, f)
		}
	}
	return g.relink(id, before)
}

func (g *Graph) relink(id ID, before []ID) error {
	r, _ := g.Get(id)
	after := r.refs()
	g.unlink(id, before)
	g.link(id, after)
	if !g.Contains(id) {
		return nil
	}
	for _, ref := range after {
		if err := g.AddWithRefs(ref); err != nil {
			return fmt.Errorf("failed to add reference of #%d: %w", id, err)
		}
	}
	return nil
}

// Validate checks that every member references members only.
func (g *Graph) Validate() error {
	var errs []error
	for _, id := range g.order {
		r, _ := g.Get(id)
		for _, ref := range r.refs() {
			if !g.Contains(ref) {
				errs = append(errs, fmt.Errorf("#%d %s references #%d: %w", id, r.Kind, ref, ErrNotMember))
			}
		}
	}
	return errors.Join(errs...)
}
