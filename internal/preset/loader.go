package preset

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned when neither the built-in catalog nor the
// preset directory knows a name.
var ErrUnknownPreset = errors.New("unknown preset")

// Paths helper for default/preset files.
type Paths struct {
	BaseDir string // base directory, e.g., ~/.config/randomizer
}

func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "default.yaml")
}
func (p Paths) PresetDir() string {
	return filepath.Join(p.BaseDir, "presets")
}
func (p Paths) PresetPath(name string) string {
	return filepath.Join(p.PresetDir(), name+".yaml")
}

// Loader reads YAML presets and merges default → built-in → preset file.
// An empty base directory serves the built-in catalog only.
type Loader struct {
	paths   Paths
	builtin []Preset

	mu    sync.RWMutex
	cache map[string]Preset
}

// NewLoader creates a preset loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths:   Paths{BaseDir: baseDir},
		builtin: Builtin(),
		cache:   make(map[string]Preset),
	}
}

func (l *Loader) Paths() Paths { return l.paths }

// Load returns the merged and validated preset. An empty name loads DefaultName.
func (l *Loader) Load(name string) (Preset, error) {
	if name == "" {
		name = DefaultName
	}
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return Preset{}, errors.Wrapf(ErrUnknownPreset, "invalid preset name %q", name)
	}

	l.mu.RLock()
	if p, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return clonePreset(p), nil
	}
	l.mu.RUnlock()

	defCfg, _, err := l.readFile(l.paths.DefaultPath())
	if err != nil {
		return Preset{}, errors.Wrap(err, "read default")
	}
	fileCfg, found, err := l.readFile(l.paths.PresetPath(name))
	if err != nil {
		return Preset{}, errors.Wrapf(err, "read preset %s", name)
	}
	base, builtin := l.lookupBuiltin(name)
	if !builtin && !found {
		return Preset{}, errors.Wrapf(ErrUnknownPreset, "%q", name)
	}

	// Merge: default <- built-in <- file
	merged := merge(defCfg, base)
	merged = merge(merged, fileCfg)
	merged.Name = name

	if err := Validate(merged); err != nil {
		return Preset{}, err
	}

	l.mu.Lock()
	l.cache[name] = clonePreset(merged)
	l.mu.Unlock()

	return merged, nil
}

// Resolve loads a preset and applies overrides on top.
func (l *Loader) Resolve(name string, o Overrides) (Preset, error) {
	p, err := l.Load(name)
	if err != nil {
		return Preset{}, err
	}
	p = o.Apply(p)
	if err := Validate(p); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Catalog loads every known preset: the built-ins in their order, followed
// by extra preset files sorted by name.
func (l *Loader) Catalog() (*Catalog, error) {
	names := make([]string, 0, len(l.builtin))
	seen := make(map[string]bool)
	for _, p := range l.builtin {
		names = append(names, p.Name)
		seen[p.Name] = true
	}

	extra, err := l.fileNames()
	if err != nil {
		return nil, err
	}
	for _, n := range extra {
		if !seen[n] {
			names = append(names, n)
		}
	}

	cat := &Catalog{}
	for _, n := range names {
		p, err := l.Load(n)
		if err != nil {
			return nil, err
		}
		cat.presets = append(cat.presets, p)
	}
	return cat, nil
}

// Invalidate clears loader's cache. Call after the watcher detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]Preset)
}

func (l *Loader) lookupBuiltin(name string) (Preset, bool) {
	for _, p := range l.builtin {
		if p.Name == name {
			return clonePreset(p), true
		}
	}
	return Preset{}, false
}

func (l *Loader) fileNames() ([]string, error) {
	if l.paths.BaseDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(l.paths.PresetDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "list presets")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// readFile loads a YAML file into a Preset. Missing files return a zero
// preset and found=false, no error.
func (l *Loader) readFile(path string) (Preset, bool, error) {
	var p Preset
	if l.paths.BaseDir == "" {
		return p, false, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Preset{}, false, nil
		}
		return Preset{}, false, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Preset{}, false, errors.Wrapf(err, "parse %s", path)
	}
	return p, true, nil
}

// merge performs a deep merge: 'b' overrides 'a' where non-zero/non-nil.
// Choices in 'b' replace those of 'a'; finish texts merge per result.
func merge(a, b Preset) Preset {
	out := clonePreset(a)

	if b.Name != "" {
		out.Name = b.Name
	}
	if b.Title != "" {
		out.Title = b.Title
	}
	if b.Menu != "" {
		out.Menu = b.Menu
	}
	if len(b.Choices) > 0 {
		out.Choices = append([]string(nil), b.Choices...)
		// finish texts of replaced choices no longer apply
		for k := range out.Texts.Finish {
			if !slices.Contains(out.Choices, k) {
				delete(out.Texts.Finish, k)
			}
		}
	}
	if b.Auto != nil {
		v := *b.Auto
		out.Auto = &v
	}
	if b.Delay != nil {
		v := *b.Delay
		out.Delay = &v
	}

	// texts
	if !b.Texts.Extra.IsZero() {
		out.Texts.Extra = b.Texts.Extra
	}
	if !b.Texts.Init.IsZero() {
		out.Texts.Init = b.Texts.Init
	}
	if !b.Texts.Delay.IsZero() {
		out.Texts.Delay = b.Texts.Delay
	}
	if b.Texts.FinishDefault != nil {
		v := *b.Texts.FinishDefault
		out.Texts.FinishDefault = &v
	}
	if len(b.Texts.Finish) > 0 {
		if out.Texts.Finish == nil {
			out.Texts.Finish = make(map[string]ClassAndText, len(b.Texts.Finish))
		}
		for k, v := range b.Texts.Finish {
			out.Texts.Finish[k] = v
		}
	}

	return out
}

func clonePreset(p Preset) Preset {
	out := p
	out.Choices = append([]string(nil), p.Choices...)
	if p.Auto != nil {
		v := *p.Auto
		out.Auto = &v
	}
	if p.Delay != nil {
		v := *p.Delay
		out.Delay = &v
	}
	if p.Texts.FinishDefault != nil {
		v := *p.Texts.FinishDefault
		out.Texts.FinishDefault = &v
	}
	if p.Texts.Finish != nil {
		out.Texts.Finish = make(map[string]ClassAndText, len(p.Texts.Finish))
		for k, v := range p.Texts.Finish {
			out.Texts.Finish[k] = v
		}
	}
	return out
}
