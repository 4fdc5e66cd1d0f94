package main

import (
	"context"
	"os"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	"github.com/xtding233/randomizer/internal/preset"
	"github.com/xtding233/randomizer/internal/session"
)

type PlayCmd struct {
	Preset string        `arg:"" optional:"" help:"Preset to play; prompts when omitted."`
	Delay  time.Duration `help:"Override the countdown before the answer."`
	NoAuto bool          `name:"no-auto" help:"Wait for enter before the first round."`
	Color  bool          `default:"true" negatable:"" help:"Colour the answers."`
	Watch  bool          `default:"true" negatable:"" help:"Reload presets when their files change."`
}

func (cmd *PlayCmd) overrides() preset.Overrides {
	var o preset.Overrides
	if cmd.Delay > 0 {
		o.Delay = &cmd.Delay
	}
	if cmd.NoAuto {
		no := false
		o.Auto = &no
	}
	return o
}

func (cmd *PlayCmd) Run(ctx context.Context, g *Globals) error {
	loader := g.loader()

	name := cmd.Preset
	if name == "" {
		var err error
		name, err = selectPreset(loader)
		if err != nil {
			return err
		}
	}

	s, err := session.New(session.Config{
		Resolve: func() (preset.Preset, error) { return loader.Resolve(name, cmd.overrides()) },
		Out:     os.Stdout,
		Color:   cmd.Color,
		Chooser: g.chooser(),
		Metrics: g.Metrics(),
		Logger:  log.WithField("component", "session"),
	})
	if err != nil {
		return err
	}
	defer s.Close()

	if cmd.Watch && g.PresetDir != "" {
		w, err := preset.NewWatcher(g.PresetDir, func(path string) {
			loader.Invalidate()
			s.Reload()
		})
		if err != nil {
			log.WithError(err).Warn("preset watching disabled")
		} else {
			w.Start(ctx)
			defer w.Close()
		}
	}

	return s.Run(ctx, os.Stdin)
}

// selectPreset asks for one of the menu presets.
func selectPreset(loader *preset.Loader) (string, error) {
	cat, err := loader.Catalog()
	if err != nil {
		return "", err
	}
	menu := cat.Menu()
	labels := make([]string, len(menu))
	for i, p := range menu {
		labels[i] = p.Menu
	}

	prompt := promptui.Select{
		Label: "Preset",
		Items: labels,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", errors.Wrap(err, "select preset")
	}
	return menu[i].Name, nil
}
