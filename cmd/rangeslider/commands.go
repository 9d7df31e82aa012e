package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/edward-ap/rangeslider/internal/config"
	"github.com/edward-ap/rangeslider/internal/logging"
	"github.com/edward-ap/rangeslider/internal/preset"
	"github.com/edward-ap/rangeslider/internal/sim"
	"github.com/edward-ap/rangeslider/internal/slider"
	"github.com/edward-ap/rangeslider/internal/sliderapp"
)

// newCommand builds the CLI. Without a subcommand it opens the window.
func newCommand(stdout, stderr io.Writer) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a JSON or YAML config file (default: per-user config)",
	}
	traceFlag := &cli.BoolFlag{
		Name:  "traceLog",
		Usage: "enable trace logging of every pointer update",
	}
	return &cli.Command{
		Name:      "rangeslider",
		Usage:     "range slider demo and headless simulator",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     []cli.Flag{configFlag, traceFlag},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			sliderapp.SetTraceLogEnabled(cmd.Bool("traceLog"))
			return ctx, nil
		},
		Action: runGUI,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "open the slider window",
				Action: runGUI,
			},
			{
				Name:      "sim",
				Usage:     "apply operations to a slider model and print the result",
				ArgsUsage: "[min=N max=N step=N range=BOOL value=N value1=N point=P point1=P position=P orientation=O tips=BOOL]...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Value: "yaml", Usage: "output format: yaml or json"},
					&cli.StringFlag{Name: "preset", Usage: "start from a bundled or saved preset"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSim(cmd, stdout, stderr)
				},
			},
		},
	}
}

func runGUI(ctx context.Context, cmd *cli.Command) error {
	a := sliderapp.NewApp(sliderapp.Options{ConfigPath: cmd.String("config")})
	a.Run()
	return nil
}

func runSim(cmd *cli.Command, stdout, stderr io.Writer) error {
	format := strings.ToLower(strings.TrimSpace(cmd.String("format")))
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unsupported format %q", format)
	}
	ops, err := sim.Parse(cmd.Args().Slice())
	if err != nil {
		return err
	}
	initial, err := simStart(cmd.String("config"), cmd.String("preset"))
	if err != nil {
		return err
	}

	log := logging.Component(logging.New(stderr), "sim")
	m := slider.New(slider.DefaultState(), slider.WithLogger(log))
	preset.Apply(m, initial)
	log.Debug().Int("ops", len(ops)).Str("preset", initial.Name).Msg("running simulation")
	res := sim.Run(m, ops)

	var out []byte
	if format == "json" {
		out, err = json.MarshalIndent(res, "", "  ")
		out = append(out, '\n')
	} else {
		out, err = yaml.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = stdout.Write(out)
	return err
}

// simStart picks the starting configuration: a named preset, else the slider
// saved in an explicit config file, else the defaults.
func simStart(configPath, presetName string) (preset.Preset, error) {
	var cfg *config.Config
	if strings.TrimSpace(configPath) != "" {
		c, err := config.LoadFile(configPath)
		if err != nil {
			return preset.Preset{}, err
		}
		cfg = c
	}
	if strings.TrimSpace(presetName) != "" {
		list := preset.DefaultPresets()
		if cfg != nil {
			list = cfg.Presets()
		}
		p, ok := preset.Find(list, presetName)
		if !ok {
			return preset.Preset{}, fmt.Errorf("unknown preset %q", presetName)
		}
		return p, nil
	}
	if cfg != nil {
		return preset.Preset{Name: "config", State: cfg.Slider}, nil
	}
	return preset.Preset{Name: "default", State: slider.DefaultState()}, nil
}
