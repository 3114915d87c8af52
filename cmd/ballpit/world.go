package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
)

// addWorldFlags binds the body-set flags shared by every command that
// spawns a simulation.
func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&numBodies, "bodies", dynamo.DefaultBodyCount, "number of bodies")
	cmd.Flags().Float64Var(&radiusMin, "radius-min", dynamo.DefaultRadiusMin, "smallest body radius")
	cmd.Flags().Float64Var(&radiusMax, "radius-max", dynamo.DefaultRadiusMax, "largest body radius")
	cmd.Flags().Float64Var(&speedMin, "speed-min", dynamo.DefaultSpeedMin, "slowest initial speed")
	cmd.Flags().Float64Var(&speedMax, "speed-max", dynamo.DefaultSpeedMax, "fastest initial speed")
	cmd.Flags().Float64Var(&width, "width", dynamo.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&height, "height", dynamo.DefaultHeight, "viewport height")
	cmd.Flags().IntVar(&visuals, "visuals", dynamo.DefaultVisuals, "number of visual ids")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "ticks to run")
}

// resolveConfig layers the sources in order: defaults, preset, config file,
// then any flag set explicitly on the command line. A zero seed is replaced
// from the clock.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := layerConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = clockSeed()
	}
	if err := cfg.World().Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// layerConfig applies the layers without filling in a seed or validating.
func layerConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("bodies") {
		cfg.Bodies = numBodies
	}
	if flags.Changed("radius-min") {
		cfg.Radius.Min = radiusMin
	}
	if flags.Changed("radius-max") {
		cfg.Radius.Max = radiusMax
	}
	if flags.Changed("speed-min") {
		cfg.Speed.Min = speedMin
	}
	if flags.Changed("speed-max") {
		cfg.Speed.Max = speedMax
	}
	if flags.Changed("width") {
		cfg.Viewport.Width = width
	}
	if flags.Changed("height") {
		cfg.Viewport.Height = height
	}
	if flags.Changed("visuals") {
		cfg.Visuals = visuals
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}

	return cfg, nil
}
