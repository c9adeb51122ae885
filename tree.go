package cellgrid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary = lipgloss.Color("212")
	info    = lipgloss.Color("45")
	muted   = lipgloss.Color("241")

	treeName   = lipgloss.NewStyle().Foreground(primary).Bold(true)
	treeRect   = lipgloss.NewStyle().Foreground(info)
	treeMuted  = lipgloss.NewStyle().Foreground(muted)
	treeBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
)

// TreeOptions controls what Tree prints for every cell.
type TreeOptions struct {
	// Area prints the content area next to the bounds.
	Area bool
	// Types prints the scale and align types.
	Types bool
	// Contents prints the number of attached contents.
	Contents bool
	// Border wraps the output in a rounded box.
	Border bool
}

// Tree renders the resolved hierarchy of cell as an indented tree.
func Tree[T any](cell *Cell[T], opts TreeOptions) string {
	var sb strings.Builder
	writeTree(&sb, cell, opts, "", "", 0)

	out := strings.TrimRight(sb.String(), "\n")
	if opts.Border {
		return treeBorder.Render(out)
	}
	return out
}

func writeTree[T any](sb *strings.Builder, cell *Cell[T], opts TreeOptions, prefix, branch string, index int) {
	name := cell.Name()
	if name == "" {
		name = fmt.Sprintf("#%d", index)
	}

	sb.WriteString(treeMuted.Render(prefix + branch))
	sb.WriteString(treeName.Render(name))
	sb.WriteString(" ")
	sb.WriteString(treeRect.Render(formatRect(cell.Bounds())))
	if opts.Area {
		sb.WriteString(treeMuted.Render(" area "))
		sb.WriteString(treeRect.Render(formatRect(cell.Area())))
	}
	if opts.Types {
		sb.WriteString(treeMuted.Render(fmt.Sprintf(" %v/%v", cell.Scale(), cell.Align())))
	}
	if opts.Contents && len(cell.Contents()) > 0 {
		sb.WriteString(treeMuted.Render(fmt.Sprintf(" [%d]", len(cell.Contents()))))
	}
	sb.WriteString("\n")

	switch branch {
	case "├─ ":
		prefix += "│  "
	case "└─ ":
		prefix += "   "
	}
	children := cell.Cells()
	for i, child := range children {
		b := "├─ "
		if i == len(children)-1 {
			b = "└─ "
		}
		writeTree(sb, child, opts, prefix, b, i)
	}
}

func formatRect(r Rect) string {
	return fmt.Sprintf("(%g, %g, %g, %g)", r.X, r.Y, r.Width, r.Height)
}
