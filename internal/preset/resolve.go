// resolve.go
package preset

import "time"

// Overrides carries command line overrides like delay/auto.
type Overrides struct {
	Delay *time.Duration
	Auto  *bool
}

// Apply returns a copy of p with the overrides set.
func (o Overrides) Apply(p Preset) Preset {
	out := clonePreset(p)
	if o.Delay != nil {
		d := Duration(*o.Delay)
		out.Delay = &d
	}
	if o.Auto != nil {
		v := *o.Auto
		out.Auto = &v
	}
	return out
}
