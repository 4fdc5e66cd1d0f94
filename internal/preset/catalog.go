package preset

// Catalog is an ordered set of loaded presets.
type Catalog struct {
	presets []Preset
}

// NewCatalog wraps presets in the given order.
func NewCatalog(presets ...Preset) *Catalog {
	return &Catalog{presets: append([]Preset(nil), presets...)}
}

// All returns every preset in order.
func (c *Catalog) All() []Preset { return append([]Preset(nil), c.presets...) }

// Lookup finds a preset by name; "" finds DefaultName.
func (c *Catalog) Lookup(name string) (Preset, bool) {
	if name == "" {
		name = DefaultName
	}
	for _, p := range c.presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// Menu returns the presets that have a menu label.
func (c *Catalog) Menu() []Preset {
	var out []Preset
	for _, p := range c.presets {
		if p.Menu != "" {
			out = append(out, p)
		}
	}
	return out
}
