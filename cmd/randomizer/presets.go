package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/randomizer/internal/render"
)

type PresetsCmd struct {
	Name string `arg:"" optional:"" help:"Show one preset as YAML."`
	Menu bool   `help:"Print the menu line only."`
}

func (cmd *PresetsCmd) Run(ctx context.Context, g *Globals) error {
	loader := g.loader()

	if cmd.Name != "" {
		p, err := loader.Load(cmd.Name)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(p)
	}

	cat, err := loader.Catalog()
	if err != nil {
		return err
	}
	if cmd.Menu {
		render.Menu(os.Stdout, cat.Menu(), "")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTITLE\tCHOICES\tAUTO\tDELAY")
	for _, p := range cat.All() {
		delay := "default"
		if d := p.DelayDuration(); d > 0 {
			delay = d.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", p.Name, p.Title, strings.Join(p.Choices, ","), p.AutoStart(), delay)
	}
	return tw.Flush()
}
