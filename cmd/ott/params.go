package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/cwbudde/algo-ott/dsp/ott"
	"github.com/cwbudde/algo-ott/internal/cli"
	"github.com/cwbudde/algo-ott/internal/preset"
)

// ParamSource holds the flags shared by commands that configure the
// processor.
type ParamSource struct {
	Preset string             `short:"p" type:"existingfile" help:"TOML preset file."`
	Set    map[string]float64 `short:"s" help:"Override a parameter as id=value (repeatable)."`
}

// store builds the parameter store: defaults, then the preset, then the
// overrides in id order.
func (s ParamSource) store(logger *slog.Logger) (*ott.AtomicParameters, error) {
	store := ott.NewAtomicParameters()
	if s.Preset != "" {
		p, err := preset.Load(s.Preset)
		if err != nil {
			return nil, err
		}
		p.Apply(store)
		logger.Debug("preset loaded", "path", s.Preset, "params", len(p))
	}

	ids := make([]string, 0, len(s.Set))
	for id := range s.Set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := store.Set(id, s.Set[id]); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// ParamsCmd lists the parameter layout with current values.
type ParamsCmd struct {
	ParamSource `embed:""`

	TOML bool `name:"toml" help:"Print the parameters as a TOML preset."`
}

func (c *ParamsCmd) Run(logger *slog.Logger) error {
	store, err := c.store(logger)
	if err != nil {
		return err
	}
	params := store.Snapshot()

	if c.TOML {
		return preset.Encode(os.Stdout, params)
	}
	fmt.Println(cli.TitleStyle.Render("Parameters"))
	cli.PrintParams(os.Stdout, params)
	return nil
}
