package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc"
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("process", "randomizer")

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" default:"withargs" help:"Play a preset interactively."`
	Pick     PickCmd     `cmd:"" help:"Pick one of the given options."`
	Presets  PresetsCmd  `cmd:"" help:"List the available presets."`
	Simulate SimulateCmd `cmd:"" help:"Check a preset's choices for uniformity."`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("randomizer"),
		kong.Description(heredoc.Doc(`
			Flip a coin, decide yes or no, pick a compass direction or any
			list of your own. Every run computes its own answer locally.
		`)),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Tree: true,
		}),
		kong.UsageOnError(),
	)
	if err != nil {
		log.WithError(err).Error("could not build command line parser")
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	err = cli.Globals.setupLogging()
	parser.FatalIfErrorf(err)

	err = kctx.Run(&cli.Globals)
	if werr := cli.Globals.writeMetrics(); werr != nil {
		log.WithError(werr).Warn("could not write metrics file")
	}
	parser.FatalIfErrorf(err)
}
