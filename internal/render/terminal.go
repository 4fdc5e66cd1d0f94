package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xtding233/randomizer/internal/preset"
	"github.com/xtding233/randomizer/internal/selection"
)

// ANSI SGR codes per style class
var palette = map[string]string{
	"init":   "2",
	"delay":  "33",
	"finish": "1",
	"yes":    "1;32",
	"no":     "1;31",
	"north":  "1;34",
	"east":   "1;35",
	"south":  "1;36",
	"west":   "1;33",
}

// Terminal writes frames for a single session to out.
type Terminal struct {
	mu        sync.Mutex
	out       io.Writer
	color     bool
	preset    preset.Preset
	lastRound uint64
}

func NewTerminal(out io.Writer, p preset.Preset, color bool) *Terminal {
	return &Terminal{out: out, preset: p, color: color}
}

// SetPreset swaps the texts used for later frames.
func (t *Terminal) SetPreset(p preset.Preset) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.preset = p
}

// Reset forgets the last drawn round, for a new controller.
func (t *Terminal) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastRound = 0
}

// Handlers returns controller callbacks that draw every phase.
func (t *Terminal) Handlers() selection.Handlers[string] {
	return selection.Handlers[string]{
		OnInit:   t.Draw,
		OnDelay:  t.Draw,
		OnFinish: t.Draw,
	}
}

// Header writes the preset title.
func (t *Terminal) Header() {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "== %s ==\n", t.preset.Title)
}

// Draw writes the frame for s. Snapshots older than the last drawn round
// are dropped.
func (t *Terminal) Draw(s selection.Snapshot[string]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.Round < t.lastRound {
		return
	}
	t.lastRound = s.Round

	f := View(t.preset, s)
	line := t.paint(f.Headline)
	if f.Extra.Text != "" {
		line += "  " + t.paint(f.Extra)
	}
	fmt.Fprintln(t.out, line)
}

func (t *Terminal) paint(c preset.ClassAndText) string {
	code, ok := palette[c.Class]
	if !t.color || !ok {
		return c.Text
	}
	return "\x1b[" + code + "m" + c.Text + "\x1b[0m"
}

// Menu writes the menu labels with the current preset in brackets.
func Menu(out io.Writer, presets []preset.Preset, here string) {
	items := make([]string, 0, len(presets))
	for _, p := range presets {
		if p.Name == here {
			items = append(items, "["+p.Menu+"]")
			continue
		}
		items = append(items, p.Menu)
	}
	fmt.Fprintln(out, strings.Join(items, "  "))
}
