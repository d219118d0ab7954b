package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	werrors "github.com/matzehuels/waypath/pkg/errors"
	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/search"
)

func (c *CLI) interactiveCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Pick origin, destination and algorithm from menus",
		Long: `Pick origin, destination and algorithm from menus and show the route.

After each route, press enter to plan another or q to quit. With --out every
route is also rendered as an SVG file in that directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, ds, runner, err := c.setup(ctx)
			if err != nil {
				return err
			}
			defer runner.Close(ctx)

			plan := func(from, to string, algo search.Algorithm) routeMsg {
				return planRoute(ctx, runner, ds, from, to, algo, outDir)
			}
			m := newPickerModel(ds.Graph.Nodes(), availableAlgorithms(ds), plan)
			final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
			if err != nil {
				return err
			}
			if pm, ok := final.(pickerModel); ok && pm.planned > 0 {
				printer{w: cmd.OutOrStdout()}.success("planned %d routes", pm.planned)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "render each route as SVG into this directory")
	return cmd
}

// planRoute runs one route query and optionally renders it.
func planRoute(ctx context.Context, runner *planner.Runner, ds *planner.Dataset, from, to string, algo search.Algorithm, outDir string) routeMsg {
	res, err := runner.Route(ctx, ds, planner.Request{From: from, To: to, Algorithm: algo})
	if err != nil {
		return routeMsg{err: err}
	}
	msg := routeMsg{result: res}
	if outDir == "" {
		return msg
	}
	name := strings.ToLower(fmt.Sprintf("%s-%s-%s.svg", res.From, res.To, res.Algorithm))
	path := filepath.Join(outDir, strings.ReplaceAll(name, " ", "_"))
	title := fmt.Sprintf("%s to %s (%s)", res.From, res.To, res.Algorithm)
	if err := writeRendering(ctx, runner, ds, res.Path, title, path, ""); err != nil {
		msg.err = err
		return msg
	}
	msg.file = path
	return msg
}

// availableAlgorithms drops the algorithms the dataset cannot serve.
func availableAlgorithms(ds *planner.Dataset) []search.Algorithm {
	var out []search.Algorithm
	for _, a := range search.Algorithms() {
		if a.NeedsHeuristic() && ds.Heuristic == nil {
			continue
		}
		out = append(out, a)
	}
	return out
}

// =============================================================================
// pickerModel - Interactive route planning
// =============================================================================

// pickerStage is the menu currently shown.
type pickerStage int

const (
	stageOrigin pickerStage = iota
	stageDestination
	stageAlgorithm
	stageResult
)

// routeMsg carries the outcome of a route query.
type routeMsg struct {
	result *planner.Result
	file   string
	err    error
}

type planFunc func(from, to string, algo search.Algorithm) routeMsg

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle        = lipgloss.NewStyle().Foreground(colorRed)
)

// pickerModel walks through origin, destination and algorithm menus and
// shows the route, then starts over until the user quits.
type pickerModel struct {
	nodes      []string
	algorithms []search.Algorithm
	plan       planFunc

	stage  pickerStage
	cursor int
	offset int
	height int

	from string
	to   string
	algo search.Algorithm

	last    routeMsg
	planned int
}

func newPickerModel(nodes []string, algorithms []search.Algorithm, plan planFunc) pickerModel {
	return pickerModel{
		nodes:      nodes,
		algorithms: algorithms,
		plan:       plan,
		height:     15,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case routeMsg:
		m.last = msg
		m.stage = stageResult
		if msg.err == nil {
			m.planned++
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m pickerModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		switch m.stage {
		case stageOrigin:
			return m, tea.Quit
		case stageResult:
			m.stage = stageOrigin
		default:
			m.stage--
		}
		m.reset()
		return m, nil
	}

	if m.stage == stageResult {
		if key == "enter" || key == " " {
			m.stage = stageOrigin
			m.reset()
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.options())-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		return m.choose()
	}
	return m, nil
}

// choose takes the highlighted option and advances to the next stage.
func (m pickerModel) choose() (tea.Model, tea.Cmd) {
	opts := m.options()
	if len(opts) == 0 {
		return m, nil
	}
	picked := opts[m.cursor]
	switch m.stage {
	case stageOrigin:
		m.from = picked
		m.stage = stageDestination
	case stageDestination:
		m.to = picked
		m.stage = stageAlgorithm
	case stageAlgorithm:
		m.algo = search.Algorithm(picked)
		from, to, algo, plan := m.from, m.to, m.algo, m.plan
		m.reset()
		return m, func() tea.Msg { return plan(from, to, algo) }
	}
	m.reset()
	return m, nil
}

func (m *pickerModel) reset() {
	m.cursor = 0
	m.offset = 0
}

// options lists the choices of the current stage. The origin is not offered
// as destination.
func (m pickerModel) options() []string {
	switch m.stage {
	case stageOrigin:
		return m.nodes
	case stageDestination:
		out := make([]string, 0, len(m.nodes))
		for _, n := range m.nodes {
			if n != m.from {
				out = append(out, n)
			}
		}
		return out
	case stageAlgorithm:
		out := make([]string, len(m.algorithms))
		for i, a := range m.algorithms {
			out[i] = string(a)
		}
		return out
	}
	return nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	if m.stage == stageResult {
		m.viewResult(&b)
		return b.String()
	}

	titles := [...]string{"Select Origin", "Select Destination", "Select Algorithm"}
	b.WriteString(StyleTitle.Render(titles[m.stage]))
	if m.stage > stageOrigin {
		b.WriteString(listDimStyle.Render("  from " + m.from))
	}
	if m.stage == stageAlgorithm {
		b.WriteString(listDimStyle.Render(" to " + m.to))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc back  q quit"))
	b.WriteString("\n\n")

	opts := m.options()
	end := min(m.offset+m.height, len(opts))
	for i := m.offset; i < end; i++ {
		label := opts[i]
		if m.stage == stageAlgorithm {
			label = fmt.Sprintf("%-8s %s", label, listDimStyle.Render(search.Algorithm(label).Description()))
		}
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + label))
		} else {
			b.WriteString(listNormalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(opts))))
	return b.String()
}

func (m pickerModel) viewResult(b *strings.Builder) {
	if m.last.err != nil {
		b.WriteString(errorStyle.Render(werrors.UserMessage(m.last.err)))
		b.WriteString("\n")
	}
	if res := m.last.result; res != nil {
		var out strings.Builder
		p := printer{w: &out}
		p.route(res)
		if m.last.file != "" {
			p.file(m.last.file)
		}
		b.WriteString(out.String())
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎ plan another  q quit"))
}
