package main

import (
	cryptoRand "crypto/rand"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/xtding233/randomizer/internal/chooser"
	"github.com/xtding233/randomizer/internal/metrics"
	"github.com/xtding233/randomizer/internal/preset"
)

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel    string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"RANDOMIZER_LOG_LEVEL" help:"Log level (${enum})."`
	LogFormat   string `name:"log-format" default:"text" enum:"text,json" env:"RANDOMIZER_LOG_FORMAT" help:"Log format (${enum})."`
	PresetDir   string `name:"preset-dir" type:"path" env:"RANDOMIZER_PRESET_DIR" help:"Directory with default.yaml and presets/*.yaml."`
	Seed        uint64 `help:"Use a seeded pseudorandom source instead of crypto/rand, for reproducible runs."`
	MetricsFile string `name:"metrics-file" type:"path" help:"Write prometheus metrics to this file on exit."`

	metrics *metrics.Metrics
}

func (g *Globals) setupLogging() error {
	level, err := logrus.ParseLevel(g.LogLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	if g.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func (g *Globals) loader() *preset.Loader {
	return preset.NewLoader(g.PresetDir)
}

// Metrics returns the process metrics, or nil when no file was requested.
func (g *Globals) Metrics() *metrics.Metrics {
	if g.MetricsFile == "" {
		return nil
	}
	if g.metrics == nil {
		g.metrics = metrics.New()
	}
	return g.metrics
}

func (g *Globals) chooser() *chooser.Chooser {
	var c *chooser.Chooser
	if g.Seed != 0 {
		c = chooser.New(nil, chooser.NewSeededRNG(g.Seed))
	} else {
		c = chooser.New(cryptoRand.Reader, nil)
	}
	c.WithLogger(log.WithField("component", "chooser"))
	if m := g.Metrics(); m != nil && g.Seed == 0 {
		c.WithFallbackHook(m.FellBack)
	}
	return c
}

func (g *Globals) writeMetrics() error {
	return g.metrics.WriteFile(g.MetricsFile)
}
