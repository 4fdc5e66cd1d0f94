// types.go
package preset

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ClassAndText is one rendered line: a style class and its text.
type ClassAndText struct {
	Class string `yaml:"class,omitempty"`
	Text  string `yaml:"text,omitempty"`
}

func (c ClassAndText) IsZero() bool { return c.Class == "" && c.Text == "" }

// Texts holds what a preset shows in each phase.
type Texts struct {
	Extra         ClassAndText            `yaml:"extra,omitempty"` // shown under the headline in every phase
	Init          ClassAndText            `yaml:"init,omitempty"`
	Delay         ClassAndText            `yaml:"delay,omitempty"`
	Finish        map[string]ClassAndText `yaml:"finish,omitempty"` // keyed by result
	FinishDefault *ClassAndText           `yaml:"finish_default,omitempty"`
}

// FinishFor returns the headline for result. Without a specific or default
// entry, or when the entry has no text, the result itself is shown.
func (t Texts) FinishFor(result string) ClassAndText {
	out, ok := t.Finish[result]
	if !ok && t.FinishDefault != nil {
		out = *t.FinishDefault
	}
	if out.Text == "" {
		out.Text = result
	}
	return out
}

// Duration is a time.Duration written as "500ms" in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Preset is one named question.
type Preset struct {
	Name    string    `yaml:"name"`
	Title   string    `yaml:"title,omitempty"`
	Menu    string    `yaml:"menu,omitempty"` // empty hides the preset from the menu
	Choices []string  `yaml:"choices,omitempty"`
	Auto    *bool     `yaml:"auto,omitempty"`  // nil means auto start
	Delay   *Duration `yaml:"delay,omitempty"` // nil means the controller default
	Texts   Texts     `yaml:"texts,omitempty"`
}

// AutoStart reports whether a session should trigger on creation.
func (p Preset) AutoStart() bool { return p.Auto == nil || *p.Auto }

// DelayDuration returns the configured delay, or 0 for the default.
func (p Preset) DelayDuration() time.Duration {
	if p.Delay == nil {
		return 0
	}
	return time.Duration(*p.Delay)
}
