package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/chart/active"
	"github.com/matzehuels/stackchart/pkg/chart/area"
	"github.com/matzehuels/stackchart/pkg/chart/data"
	"github.com/matzehuels/stackchart/pkg/chart/pie"
	"github.com/matzehuels/stackchart/pkg/config"
)

const rulerWidth = 48

var (
	exploreCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	exploreHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	exploreErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [file]",
		Short: "Hover through a chart interactively",
		Long: `Explore loads a chart definition and lets you move the pointer across its
keys with the arrow keys. Every move goes through the chart's hover store,
so the table shows exactly what a render at that pointer would draw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, warnings, err := config.Load(args[0])
			if err != nil {
				return err
			}
			for _, w := range warnings {
				printWarning("%s", w)
			}
			m, err := newExplorer(def)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// explorer is the bubbletea model of the explore command. Exactly one of
// area and pie is set. cursor indexes keys, -1 while idle.
type explorer struct {
	def    *config.Definition
	area   *chart.AreaChart
	pie    *chart.PieChart
	keys   []any
	cursor int

	areaGeom *area.Geometry
	pieGeom  *pie.Geometry
	err      error
}

func newExplorer(def *config.Definition) (explorer, error) {
	m := explorer{def: def, cursor: -1}
	if def.IsPie() {
		m.pie = chart.NewPieChart(def.Chart, def.PieConfig())
		if err := m.pie.SetData(def.Data); err != nil {
			return m, err
		}
		for _, p := range m.pie.Points() {
			m.keys = append(m.keys, p.Key)
		}
	} else {
		m.area = chart.NewAreaChart(def.Chart,
			chart.WithAreaScheme(def.Scheme),
			chart.WithElements(def.AreaElements()))
		if err := m.area.SetData(def.Data); err != nil {
			return m, err
		}
		m.keys = m.area.Shape().AllKeys()
	}
	m.render()
	return m, m.err
}

func (m *explorer) render() {
	if m.pie != nil {
		m.pieGeom, m.err = m.pie.Render()
		return
	}
	m.areaGeom, m.err = m.area.Render()
}

func (m *explorer) selection() active.Selection {
	if m.pie != nil {
		return m.pie.Store().Current()
	}
	return m.area.Store().Current()
}

// hover moves the pointer to keys[i], or leaves the chart for i < 0.
func (m *explorer) hover(i int) {
	m.cursor = i
	switch {
	case i < 0 && m.pie != nil:
		m.pie.Surface().PointerLeave()
	case i < 0:
		m.area.Surface().PointerLeave()
	case m.pie != nil:
		if !m.pie.HoverKey(m.keys[i]) {
			m.pie.Surface().PointerLeave()
		}
	default:
		m.area.HoverKey(m.keys[i])
	}
	m.render()
}

func (m explorer) Init() tea.Cmd {
	return nil
}

func (m explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if k := key.String(); k == "q" || k == "ctrl+c" {
		return m, tea.Quit
	}
	if len(m.keys) == 0 {
		return m, nil
	}
	switch key.String() {
	case "right", "l", "tab":
		m.hover((m.cursor + 1) % len(m.keys))
	case "left", "h", "shift+tab":
		if m.cursor <= 0 {
			m.hover(len(m.keys) - 1)
		} else {
			m.hover(m.cursor - 1)
		}
	case "home":
		m.hover(0)
	case "end":
		m.hover(len(m.keys) - 1)
	case "esc", " ":
		m.hover(-1)
	}
	return m, nil
}

func (m explorer) View() string {
	var b strings.Builder

	title := m.def.Name
	if title == "" {
		title = "chart"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · %g×%g", m.def.Chart.Type, m.def.Chart.Width, m.def.Chart.Height)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ move pointer  esc leave  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(exploreErrorStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
	}

	if m.area != nil {
		b.WriteString(m.ruler())
		b.WriteString("\n")
	}
	b.WriteString(m.selectionLine())
	b.WriteString("\n\n")

	switch {
	case m.areaGeom != nil:
		b.WriteString(m.areaTable())
	case m.pieGeom != nil:
		b.WriteString(m.pieTable())
	}
	b.WriteString("\n")
	return b.String()
}

// ruler draws the x axis with a tick per key and the mark line position.
func (m explorer) ruler() string {
	cells := []rune(strings.Repeat("─", rulerWidth))
	w := m.def.Chart.Width
	col := func(x float64) int {
		c := int(math.Round(x / w * float64(rulerWidth-1)))
		return max(0, min(rulerWidth-1, c))
	}
	xs := m.area.XScale()
	for _, k := range m.keys {
		if x := xs.Scale(k); !math.IsNaN(x) {
			cells[col(x)] = '┼'
		}
	}
	line := StyleDim.Render(string(cells))
	if m.areaGeom == nil || m.areaGeom.MarkLine == nil {
		return "  " + line
	}
	marker := strings.Repeat(" ", col(m.areaGeom.MarkLine.X)) + "▼"
	return "  " + exploreCursorStyle.Render(marker) + "\n  " + line
}

func (m explorer) selectionLine() string {
	sel := m.selection()
	if !sel.Active {
		return StyleDim.Render("idle")
	}
	keys := make([]string, len(sel.Keys))
	for i, k := range sel.Keys {
		keys[i] = data.KeyString(k)
	}
	s := "hover " + StyleValue.Render(strings.Join(keys, ", "))
	if m.area != nil {
		s += StyleDim.Render(fmt.Sprintf("  x=%.1f", sel.Coordinate))
	} else {
		s += StyleDim.Render(fmt.Sprintf("  angle=%.3f", sel.Coordinate))
	}
	return s
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██") + " " + hex
}

func (m explorer) areaTable() string {
	sel := m.selection()
	rows := make([][]string, 0, len(m.areaGeom.Layers))
	for _, l := range m.areaGeom.Layers {
		name := "value"
		if l.Key != nil {
			name = data.KeyString(l.Key)
		}
		value := "—"
		if sel.Active {
			for _, p := range l.Points {
				if data.KeyEqual(p.Key, sel.Keys[0]) {
					value = fmt.Sprintf("%g", p.Value)
				}
			}
		}
		rows = append(rows, []string{name, swatch(l.Color), value})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Series", "Color", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return exploreHeaderStyle
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func (m explorer) pieTable() string {
	var total float64
	for _, s := range m.pieGeom.Slices {
		total += s.Arc.Value
	}
	rows := make([][]string, 0, len(m.pieGeom.Slices))
	for _, s := range m.pieGeom.Slices {
		cursor := "  "
		if s.Active && m.selection().Active {
			cursor = "▸ "
		}
		share := "—"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", s.Arc.Value/total*100)
		}
		rows = append(rows, []string{cursor, data.KeyString(s.Arc.Key), swatch(s.Color), fmt.Sprintf("%g", s.Arc.Value), share})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Slice", "Color", "Value", "Share").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return exploreHeaderStyle
			}
			if row >= 0 && row < len(m.pieGeom.Slices) && m.pieGeom.Slices[row].Active && m.selection().Active {
				return exploreCursorStyle
			}
			return lipgloss.NewStyle()
		})
	out := t.Render()
	if n := len(m.pieGeom.Labels); n > 0 {
		out += "\n" + StyleDim.Render(fmt.Sprintf("%d of %d labels placed", n, len(m.pieGeom.Slices)))
	}
	return out
}
