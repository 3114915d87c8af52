package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI. Palette holds one color per
// visual id; ids past the end wrap around.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Palette   []lipgloss.Color
}

var (
	ThemePastel = Theme{
		Name:      "pastel",
		Primary:   lipgloss.Color("#C7CEEA"),
		Secondary: lipgloss.Color("#B5EAD7"),
		Accent:    lipgloss.Color("#F472B6"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#6EE7B7"),
		Warning:   lipgloss.Color("#FCD34D"),
		Palette: []lipgloss.Color{
			"#B7C9E2", // classic
			"#FFB7B2", // coral
			"#B5EAD7", // mint
			"#E2F0CB", // lime
			"#FFDAC1", // peach
			"#C7CEEA", // periwinkle
			"#475569", // midnight
			"#FCD34D", // golden
			"#F472B6", // bubblegum
			"#6EE7B7", // seafoam
		},
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Palette: []lipgloss.Color{
			"#03045e", "#023e8a", "#0077b6", "#0096c7", "#00b4d8",
			"#48cae4", "#90e0ef", "#ade8f4", "#caf0f8", "#ffd700",
		},
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"),
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Success:   lipgloss.Color("#5fd068"),
		Warning:   lipgloss.Color("#ffc048"),
		Palette: []lipgloss.Color{
			"#ff6b6b", "#feca57", "#ff9ff3", "#ff9f43", "#ee5253",
			"#f368e0", "#ffc048", "#ff7f50", "#c44569", "#f8a5c2",
		},
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Palette:   []lipgloss.Color{"#ffffff", "#bbbbbb"},
	}

	// Default theme
	CurrentTheme = ThemePastel

	Themes = []Theme{
		ThemePastel,
		ThemeOcean,
		ThemeSunset,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to pastel.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePastel
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	SetTheme(names[0])
}

// ColorIndex maps a visual id onto the theme palette.
func (t Theme) ColorIndex(v int) int {
	if len(t.Palette) == 0 {
		return NoColor
	}
	if v < 0 {
		v = -v
	}
	return v % len(t.Palette)
}

// PaletteStyles returns one foreground style per palette entry.
func (t Theme) PaletteStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(t.Palette))
	for i, c := range t.Palette {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}
