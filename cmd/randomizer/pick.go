package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/xtding233/randomizer/internal/preset"
	"github.com/xtding233/randomizer/internal/session"
)

type PickCmd struct {
	Choices     []string      `arg:"" help:"Options to pick from. Repeat an option to weight it."`
	Rounds      int           `default:"1" help:"Number of answers to print."`
	Delay       time.Duration `default:"300ms" help:"Countdown before each answer."`
	Interactive bool          `short:"i" help:"Stay in an interactive session instead."`
	Color       bool          `default:"true" negatable:"" help:"Colour the answers."`
}

func (cmd *PickCmd) Run(ctx context.Context, g *Globals) error {
	if cmd.Rounds < 1 {
		return errors.Errorf("rounds must be >= 1, got %d", cmd.Rounds)
	}

	auto := cmd.Interactive
	p := preset.Overrides{Delay: &cmd.Delay, Auto: &auto}.Apply(preset.Custom(cmd.Choices))
	if err := preset.Validate(p); err != nil {
		return err
	}

	cfg := session.Config{
		Resolve: func() (preset.Preset, error) { return p, nil },
		Color:   cmd.Color,
		Chooser: g.chooser(),
		Metrics: g.Metrics(),
		Logger:  log.WithField("component", "session"),
	}
	if cmd.Interactive {
		cfg.Out = os.Stdout
	}

	s, err := session.New(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	if cmd.Interactive {
		return s.Run(ctx, os.Stdin)
	}
	for i := 0; i < cmd.Rounds; i++ {
		result, err := s.Once(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result)
	}
	return nil
}
