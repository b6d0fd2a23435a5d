package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"hyperfolio/internal/ui/style"
)

// TableColumn represents a column configuration.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

// TableRow represents a row of data. CellStyles is optional; when set, the
// style at index i overrides the row style for that cell, which is how the
// trade log colors each PnL cell by its sign.
type TableRow struct {
	Cells      []string
	CellStyles []*lipgloss.Style
}

// Table renders tabular data with optional selection and zebra striping.
type Table struct {
	columns     []TableColumn
	rows        []TableRow
	width       int
	height      int
	selectedRow int
	offset      int

	headerStyle      lipgloss.Style
	rowStyle         lipgloss.Style
	selectedRowStyle lipgloss.Style
	borderStyle      lipgloss.Style

	showBorder  bool
	showHeaders bool
	selectable  bool
	zebra       bool
}

// NewTable creates a new table component.
func NewTable() *Table {
	palette := style.DefaultPalette()

	return &Table{
		headerStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true).
			Padding(0, 1),

		rowStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Padding(0, 1),

		selectedRowStyle: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Primary).
			Padding(0, 1),

		borderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted),

		showBorder:  true,
		showHeaders: true,
		selectable:  true,
	}
}

// AddColumn adds a column to the table.
func (t *Table) AddColumn(header string, width int, align lipgloss.Position) *Table {
	t.columns = append(t.columns, TableColumn{Header: header, Width: width, Align: align})
	return t
}

// SetRows replaces all rows.
func (t *Table) SetRows(rows []TableRow) *Table {
	t.rows = rows
	if t.selectedRow >= len(rows) {
		t.selectedRow = 0
		t.offset = 0
	}
	return t
}

// AddRow appends a plain row.
func (t *Table) AddRow(cells ...string) *Table {
	t.rows = append(t.rows, TableRow{Cells: cells})
	return t
}

// Clear removes all rows.
func (t *Table) Clear() *Table {
	t.rows = nil
	t.selectedRow = 0
	t.offset = 0
	return t
}

// SetSize sets the table dimensions; height bounds the visible row window.
func (t *Table) SetSize(width, height int) *Table {
	t.width = width
	t.height = height
	return t
}

// SetSelectable enables/disables row selection.
func (t *Table) SetSelectable(selectable bool) *Table {
	t.selectable = selectable
	return t
}

// SetShowBorder enables/disables the outer border.
func (t *Table) SetShowBorder(show bool) *Table {
	t.showBorder = show
	return t
}

// SetZebra enables/disables alternating row backgrounds.
func (t *Table) SetZebra(zebra bool) *Table {
	t.zebra = zebra
	return t
}

// MoveUp moves the selection up one row.
func (t *Table) MoveUp() *Table {
	if t.selectable && t.selectedRow > 0 {
		t.selectedRow--
		if t.selectedRow < t.offset {
			t.offset = t.selectedRow
		}
	}
	return t
}

// MoveDown moves the selection down one row.
func (t *Table) MoveDown() *Table {
	if t.selectable && t.selectedRow < len(t.rows)-1 {
		t.selectedRow++
		if visible := t.visibleRows(); t.selectedRow >= t.offset+visible {
			t.offset = t.selectedRow - visible + 1
		}
	}
	return t
}

// SelectedRow returns the current selection index.
func (t *Table) SelectedRow() int {
	return t.selectedRow
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}

// View renders the table.
func (t *Table) View() string {
	if len(t.columns) == 0 {
		return ""
	}

	var content strings.Builder

	if t.showHeaders {
		var header strings.Builder
		var separator strings.Builder
		for i, col := range t.columns {
			header.WriteString(t.renderCell(col.Header, col.Width, col.Align, t.headerStyle))
			separator.WriteString(strings.Repeat("─", col.Width))
			if i < len(t.columns)-1 {
				header.WriteString("│")
				separator.WriteString("┼")
			}
		}
		content.WriteString(header.String())
		content.WriteString("\n")
		content.WriteString(separator.String())
		content.WriteString("\n")
	}

	visible := t.visibleRows()
	end := t.offset + visible
	if end > len(t.rows) {
		end = len(t.rows)
	}

	palette := style.DefaultPalette()
	for rowIndex := t.offset; rowIndex < end; rowIndex++ {
		row := t.rows[rowIndex]

		base := t.rowStyle
		selected := t.selectable && rowIndex == t.selectedRow
		if selected {
			base = t.selectedRowStyle
		} else if t.zebra && rowIndex%2 == 1 {
			base = base.Background(palette.BackgroundAlt)
		}

		var line strings.Builder
		for i, col := range t.columns {
			cell := ""
			if i < len(row.Cells) {
				cell = row.Cells[i]
			}

			cellStyle := base
			if !selected && i < len(row.CellStyles) && row.CellStyles[i] != nil {
				cellStyle = *row.CellStyles[i]
			}

			line.WriteString(t.renderCell(cell, col.Width, col.Align, cellStyle))
			if i < len(t.columns)-1 {
				line.WriteString("│")
			}
		}

		content.WriteString(line.String())
		if rowIndex < end-1 {
			content.WriteString("\n")
		}
	}

	result := content.String()
	if t.showBorder {
		result = t.borderStyle.Render(result)
	}
	return result
}

// visibleRows returns how many rows fit in the configured height.
func (t *Table) visibleRows() int {
	if t.height <= 0 {
		return len(t.rows)
	}
	reserved := 0
	if t.showHeaders {
		reserved = 2
	}
	if t.showBorder {
		reserved += 2
	}
	visible := t.height - reserved
	if visible < 1 {
		visible = 1
	}
	return visible
}

func (t *Table) renderCell(content string, width int, align lipgloss.Position, cellStyle lipgloss.Style) string {
	// Truncate by display width, never by bytes: cells can hold multi-byte
	// runes and double-width glyphs.
	if runewidth.StringWidth(content) > width {
		tail := "..."
		if width <= len(tail) {
			tail = ""
		}
		content = runewidth.Truncate(content, width, tail)
	}
	return cellStyle.Width(width).Align(align).Render(content)
}
