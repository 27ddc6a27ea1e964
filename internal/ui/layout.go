package ui

// Terminal size assumptions and layout thresholds.
const (
	// LayoutColumnsWidth is the width from which the overview uses two
	// columns of panes.
	LayoutColumnsWidth = 100

	// chromeLines is the header plus the command bar.
	chromeLines = 2

	// paneChrome is the border plus the pane title.
	paneChrome = 3

	defaultWidth  = 80
	defaultHeight = 24
)

// grid describes how panes are laid out on screen.
type grid struct {
	columns    int
	rows       int
	paneWidth  int
	paneHeight int
}

// layoutGrid fits panes into a width x height terminal. The overview uses two
// columns when there is more than one pane and the terminal is wide enough.
func layoutGrid(width, height, panes int) grid {
	if panes < 1 {
		panes = 1
	}
	columns := 1
	if panes > 1 && width >= LayoutColumnsWidth {
		columns = 2
	}
	rows := (panes + columns - 1) / columns
	body := max(height-chromeLines, 0)
	return grid{
		columns:    columns,
		rows:       rows,
		paneWidth:  max(width/columns, 4),
		paneHeight: max(body/rows, paneChrome+1),
	}
}

// lineRows is how many log lines fit inside one pane.
func (g grid) lineRows() int {
	return max(g.paneHeight-paneChrome, 1)
}
