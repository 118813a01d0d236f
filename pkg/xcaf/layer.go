package xcaf

// Layer is a named group of shapes.
type Layer struct {
	Name    string
	Visible bool
	members []*Label
}

// Add puts a label on the layer.
func (ly *Layer) Add(l *Label) {
	for _, m := range ly.members {
		if m == l {
			return
		}
	}
	ly.members = append(ly.members, l)
	l.layers = append(l.layers, ly)
}

// Labels returns the members of the layer.
func (ly *Layer) Labels() []*Label { return ly.members }

// Material is a named material with an optional density.
type Material struct {
	Name             string
	Description      string
	Density          float64
	DensityName      string
	DensityValueType string
}
