package render

import (
	"github.com/xtding233/randomizer/internal/preset"
	"github.com/xtding233/randomizer/internal/selection"
)

// Frame is everything shown for one snapshot.
type Frame struct {
	Phase    selection.Phase
	Headline preset.ClassAndText
	Extra    preset.ClassAndText
}

type headlineFunc func(preset.Texts, selection.Snapshot[string]) preset.ClassAndText

var headlines = map[selection.Phase]headlineFunc{
	selection.PhaseInit: func(t preset.Texts, _ selection.Snapshot[string]) preset.ClassAndText {
		return t.Init
	},
	selection.PhaseDelay: func(t preset.Texts, _ selection.Snapshot[string]) preset.ClassAndText {
		return t.Delay
	},
	selection.PhaseFinish: func(t preset.Texts, s selection.Snapshot[string]) preset.ClassAndText {
		return t.FinishFor(s.Result)
	},
}

// View maps a snapshot of p's controller to a Frame.
func View(p preset.Preset, s selection.Snapshot[string]) Frame {
	f := Frame{Phase: s.Phase, Extra: p.Texts.Extra}
	if fn, ok := headlines[s.Phase]; ok {
		f.Headline = fn(p.Texts, s)
	}
	return f
}
