package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/sim"
)

var presetInfo = map[string]string{
	"ballpit": "fifteen bodies, the classic pit",
	"pair":    "two equal bodies",
	"crowded": "sixty bodies, constant contact",
	"sparse":  "five quick bodies",
	"marbles": "many small fast bodies",
}

const (
	stateMenu = iota
	stateSim
)

// Picker lists the presets and opens the live view on the chosen one.
type Picker struct {
	state     int
	cursor    int
	presets   []string
	seed      int64
	live      Model
	size      *tea.WindowSizeMsg
	lastError error
}

func NewPicker(seed int64) Picker {
	return Picker{presets: config.ListPresets(), seed: seed}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		p.size = &size
	}
	if p.state == stateSim {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			p.live.Simulator().Stop()
			p.state = stateMenu
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		p.live = next.(Model)
		return p, cmd
	}

	return p.updateMenu(msg)
}

func (p Picker) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.presets)-1 {
			p.cursor++
		}
	case "enter", " ":
		return p.start()
	}
	return p, nil
}

func (p Picker) start() (Picker, tea.Cmd) {
	cfg := config.GetPreset(p.presets[p.cursor])
	cfg.Seed = p.seed
	world := cfg.World()

	s, err := sim.New(world)
	if err != nil {
		p.lastError = err
		return p, nil
	}
	p.live = NewModel(s, world, Options{FPS: cfg.FPS, Theme: cfg.Theme})
	if p.size != nil {
		next, _ := p.live.Update(*p.size)
		p.live = next.(Model)
	}
	p.state = stateSim
	p.lastError = nil
	return p, p.live.Init()
}

func (p Picker) View() string {
	if p.state == stateSim {
		return p.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	cur := lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)

	b.WriteString("\n\n    " + h.Render("BALLPIT") + "\n    " + sub.Render("bouncing bodies in a box") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, preset := range p.presets {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cur.Render("▸"), name.Render(fmt.Sprintf("%-10s", preset)), desc.Render(presetInfo[preset])))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", dim.Render(fmt.Sprintf("  %-10s", preset)), dim.Render(presetInfo[preset])))
		}
	}
	if p.lastError != nil {
		b.WriteString("\n    " + StatusRecording.Render(p.lastError.Error()) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + dim.Render(" navigate  ") + key.Render("enter") + dim.Render(" start  ") + key.Render("esc") + dim.Render(" back  ") + key.Render("q") + dim.Render(" quit") + "\n")
	return b.String()
}

func RunPicker(seed int64) error {
	_, err := tea.NewProgram(NewPicker(seed), tea.WithAltScreen()).Run()
	return err
}
