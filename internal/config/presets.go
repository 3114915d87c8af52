package config

import "sort"

var Presets = map[string]*Config{
	"ballpit": DefaultConfig(),
	"pair": {
		Bodies: 2, Radius: RangeConfig{40, 40}, Speed: RangeConfig{2, 2},
		Viewport: ViewportConfig{640, 360}, Visuals: 10, FPS: 60, Steps: 600, Theme: "pastel",
	},
	"crowded": {
		Bodies: 60, Radius: RangeConfig{20, 40}, Speed: RangeConfig{0.5, 2},
		Viewport: ViewportConfig{1280, 720}, Visuals: 10, FPS: 60, Steps: 1200, Theme: "pastel",
	},
	"sparse": {
		Bodies: 5, Radius: RangeConfig{15, 30}, Speed: RangeConfig{1, 3},
		Viewport: ViewportConfig{1280, 720}, Visuals: 10, FPS: 60, Steps: 600, Theme: "ocean",
	},
	"marbles": {
		Bodies: 40, Radius: RangeConfig{8, 14}, Speed: RangeConfig{2, 4},
		Viewport: ViewportConfig{800, 600}, Visuals: 10, FPS: 60, Steps: 900, Theme: "mono",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
