package xcaf

import "fmt"

// SHUO is one link of a specified higher usage occurrence: it pins a
// component occurrence under a specific path of upper occurrences.
type SHUO struct {
	component *Label
	upper     []*SHUO
	next      []*SHUO
	style     Style
}

// Component returns the component occurrence the node belongs to.
func (s *SHUO) Component() *Label { return s.component }

// UpperUsage returns the enclosing occurrence links.
func (s *SHUO) UpperUsage() []*SHUO { return s.upper }

// NextUsage returns the deeper occurrence links.
func (s *SHUO) NextUsage() []*SHUO { return s.next }

// IsMain reports whether the node is the top of its chain.
func (s *SHUO) IsMain() bool { return len(s.upper) == 0 }

// Style returns the override style of the chain.
func (s *SHUO) Style() Style { return s.style }

// SetColor sets an override colour.
func (s *SHUO) SetColor(t ColorType, c Color) { s.style.SetColor(t, c) }

// SetVisible sets the override visibility.
func (s *SHUO) SetVisible(v bool) { s.style.Hidden = !v }

// SetSHUO creates a chain for the path of components from the top-level
// occurrence down to the deepest one. Each component must be an occurrence
// inside the shape referred by the previous one. The main node is returned.
func (d *Document) SetSHUO(path ...*Label) (*SHUO, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("occurrence chain needs at least two components, got %d", len(path))
	}
	for i, c := range path {
		if !c.IsComponent() {
			return nil, fmt.Errorf("label %s is not a component", c)
		}
		if i == 0 {
			continue
		}
		ref, _ := path[i-1].ReferredShape()
		if c.father != ref {
			return nil, fmt.Errorf("component %s is not part of %s", c, ref)
		}
	}

	var prev, main *SHUO
	for _, c := range path {
		node := &SHUO{component: c}
		c.shuos = append(c.shuos, node)
		if prev == nil {
			main = node
		} else {
			node.upper = append(node.upper, prev)
			prev.next = append(prev.next, node)
		}
		prev = node
	}
	return main, nil
}
