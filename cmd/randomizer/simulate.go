package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/xtding233/randomizer/internal/chooser"
)

type SimulateCmd struct {
	Preset string `arg:"" optional:"" help:"Preset whose choices are drawn."`
	Trials int    `default:"100000" help:"Number of draws."`
}

func (cmd *SimulateCmd) Run(ctx context.Context, g *Globals) error {
	if cmd.Trials < 1 {
		return errors.Errorf("trials must be >= 1, got %d", cmd.Trials)
	}
	p, err := g.loader().Load(cmd.Preset)
	if err != nil {
		return err
	}

	st, err := chooser.Simulate(g.chooser(), len(p.Choices), cmd.Trials)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tCHOICE\tCOUNT\tFREQ")
	for i, c := range p.Choices {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.4f\n", i, c, st.Counts[i], st.Freqs[i])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	verdict := "consistent with uniform"
	if !st.Uniform() {
		verdict = "NOT uniform"
	}
	fmt.Printf("chi2=%.3f df=%d critical(0.1%%)=%.3f max_dev=%.4f: %s\n",
		st.ChiSquare, st.DegreesOfFreedom(), st.Critical(chooser.ZCritical), st.MaxDev, verdict)
	return nil
}
