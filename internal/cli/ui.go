package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/waypath/pkg/history"
	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/search"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - routes
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - endpoints
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleEndpoint    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleStop        = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled output to a command's stdout.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	fmt.Fprintln(p.w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// route prints a planned route with its metrics.
func (p printer) route(res *planner.Result) {
	fmt.Fprintln(p.w, StyleTitle.Render(fmt.Sprintf("%s %s %s", res.From, iconArrow, res.To)))
	p.keyValue("algorithm", string(res.Algorithm))
	p.keyValue("path", formatPath(res.Path))
	p.keyValue("hops", strconv.Itoa(res.Hops))
	p.keyValue("cost", formatCost(res.Cost))
	status := styleComputed.Render("computed in " + res.Duration.String())
	if res.Cached {
		status = styleCached.Render("cached")
	}
	p.keyValue("status", status)
}

// paths prints enumerated paths as a table.
func (p printer) paths(res *planner.PathsResult) {
	fmt.Fprintln(p.w, StyleTitle.Render(fmt.Sprintf("%s %s %s (%s)", res.From, iconArrow, res.To, res.Algorithm)))
	rows := make([][]string, len(res.Paths))
	for i, info := range res.Paths {
		rows[i] = []string{strconv.Itoa(i + 1), formatPath(info.Path), strconv.Itoa(info.Hops), formatCost(info.Cost)}
	}
	p.table([]string{"#", "PATH", "HOPS", "COST"}, rows)
	if res.Cached {
		fmt.Fprintln(p.w, styleCached.Render("cached"))
	}
}

// nodes prints locations with their road counts.
func (p printer) nodes(ds *planner.Dataset) {
	ids := ds.Graph.Nodes()
	rows := make([][]string, len(ids))
	for i, id := range ids {
		nbrs, _ := ds.Graph.Neighbors(id)
		rows[i] = []string{id, strconv.Itoa(len(nbrs)), strings.Join(nbrs, ", ")}
	}
	p.table([]string{"LOCATION", "ROADS", "NEIGHBORS"}, rows)
	fmt.Fprintln(p.w, StyleDim.Render(fmt.Sprintf("%d locations · %d roads", ds.Graph.NodeCount(), ds.Graph.EdgeCount())))
}

// history prints recorded routes, newest first.
func (p printer) history(entries []history.Entry) {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.Algorithm,
			strings.Join(e.Path, " "+iconArrow+" "),
			formatCost(e.Cost),
		}
	}
	p.table([]string{"WHEN", "ALGORITHM", "PATH", "COST"}, rows)
}

func (p printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
	fmt.Fprintln(p.w, t.Render())
}

// =============================================================================
// Formatting
// =============================================================================

// formatPath highlights the endpoints of a path.
func formatPath(path search.Path) string {
	parts := make([]string, len(path))
	for i, n := range path {
		if i == 0 || i == len(path)-1 {
			parts[i] = styleEndpoint.Render(n)
		} else {
			parts[i] = styleStop.Render(n)
		}
	}
	return strings.Join(parts, StyleDim.Render(" "+iconArrow+" "))
}

func formatCost(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}
