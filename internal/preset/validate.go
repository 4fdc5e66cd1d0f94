package preset

import (
	"fmt"
	"strings"
)

// Validate checks semantic constraints of a preset.
func Validate(p Preset) error {
	var errs []string

	if p.Name == "" {
		errs = append(errs, "name is required")
	}
	if len(p.Choices) == 0 {
		errs = append(errs, "choices must not be empty")
	}
	for i, c := range p.Choices {
		if strings.TrimSpace(c) == "" {
			errs = append(errs, fmt.Sprintf("choices[%d] must not be blank", i))
		}
	}
	if p.Delay != nil && *p.Delay < 0 {
		errs = append(errs, "delay must be >= 0")
	}

	// finish text: every choice needs an entry unless there is a default
	if p.Texts.FinishDefault == nil && len(p.Texts.Finish) > 0 {
		for _, c := range p.Choices {
			if _, ok := p.Texts.Finish[c]; !ok {
				errs = append(errs, fmt.Sprintf("texts.finish has no entry for choice %q", c))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("preset %q validation failed: %s", p.Name, strings.Join(errs, "; "))
	}
	return nil
}
