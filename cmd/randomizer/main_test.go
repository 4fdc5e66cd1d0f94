package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("randomizer"), kong.Exit(func(int) { t.Fatal("exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestParseDefaults(t *testing.T) {
	cli, _ := parse(t, "pick", "tea", "coffee")
	assert.Equal(t, []string{"tea", "coffee"}, cli.Pick.Choices)
	assert.Equal(t, 1, cli.Pick.Rounds)
	assert.Equal(t, 300*time.Millisecond, cli.Pick.Delay)
	assert.True(t, cli.Pick.Color)
	assert.Equal(t, "warn", cli.LogLevel)
	assert.Equal(t, "text", cli.LogFormat)
}

func TestParsePlayIsDefault(t *testing.T) {
	cli, _ := parse(t, "compass", "--delay", "1s", "--no-color")
	assert.Equal(t, "compass", cli.Play.Preset)
	assert.Equal(t, time.Second, cli.Play.Delay)
	assert.False(t, cli.Play.Color)
	assert.True(t, cli.Play.Watch)
}

func TestPlayOverrides(t *testing.T) {
	o := (&PlayCmd{}).overrides()
	assert.Nil(t, o.Delay)
	assert.Nil(t, o.Auto)

	o = (&PlayCmd{Delay: time.Second, NoAuto: true}).overrides()
	require.NotNil(t, o.Delay)
	assert.Equal(t, time.Second, *o.Delay)
	require.NotNil(t, o.Auto)
	assert.False(t, *o.Auto)
}

func TestPickWritesMetrics(t *testing.T) {
	g := &Globals{LogLevel: "error", Seed: 42, MetricsFile: filepath.Join(t.TempDir(), "randomizer.prom")}
	require.NoError(t, g.setupLogging())

	cmd := &PickCmd{Choices: []string{"only"}, Rounds: 2, Delay: time.Millisecond}
	require.NoError(t, cmd.Run(context.Background(), g))
	require.NoError(t, g.writeMetrics())

	b, err := os.ReadFile(g.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), `randomizer_results_total{preset="custom",result="only"} 2`)
	assert.Contains(t, string(b), `randomizer_triggers_total{preset="custom"} 2`)
}

func TestPickRejectsBadInput(t *testing.T) {
	g := &Globals{}
	assert.Error(t, (&PickCmd{Choices: []string{"a"}, Rounds: 0}).Run(context.Background(), g))
	assert.Error(t, (&PickCmd{Choices: []string{" "}, Rounds: 1}).Run(context.Background(), g))
}

func TestSimulate(t *testing.T) {
	g := &Globals{Seed: 3}
	require.NoError(t, (&SimulateCmd{Preset: "compass", Trials: 1000}).Run(context.Background(), g))
	assert.Error(t, (&SimulateCmd{Preset: "compass", Trials: 0}).Run(context.Background(), g))
	assert.Error(t, (&SimulateCmd{Preset: "dice", Trials: 10}).Run(context.Background(), g))
}

func TestPresetsCommand(t *testing.T) {
	g := &Globals{}
	require.NoError(t, (&PresetsCmd{}).Run(context.Background(), g))
	require.NoError(t, (&PresetsCmd{Menu: true}).Run(context.Background(), g))
	require.NoError(t, (&PresetsCmd{Name: "yes"}).Run(context.Background(), g))
}
