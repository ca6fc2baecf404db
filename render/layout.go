package render

// Cell footprint on screen: glyph plus one gap column and one gap row
const (
	cellGlyphWidth = 4
	cellWidth      = cellGlyphWidth + 1
	cellHeight     = 2

	hudRows   = 4 // Bio header, mode indicator, score, blank
	boardTop  = hudRows
	minMargin = 1
)

// Layout places the board on a screen of a given size
type Layout struct {
	Width, Height  int
	Rows, Cols     int
	BoardX, BoardY int
}

// ComputeLayout centers the board horizontally below the HUD
func ComputeLayout(width, height, rows, cols int) Layout {
	l := Layout{Width: width, Height: height, Rows: rows, Cols: cols, BoardY: boardTop}
	l.BoardX = max((width-l.BoardWidth())/2, minMargin)
	return l
}

// BoardWidth is the screen width of the board without its trailing gap
func (l Layout) BoardWidth() int {
	return l.Cols*cellWidth - 1
}

// BoardHeight is the screen height of the board without its trailing gap
func (l Layout) BoardHeight() int {
	return l.Rows*cellHeight - 1
}

// BelowBoard is the first screen row under the board
func (l Layout) BelowBoard() int {
	return l.BoardY + l.BoardHeight() + 1
}

// CellOrigin returns the top-left screen position of cell i
func (l Layout) CellOrigin(i int) (x, y int) {
	row, col := i/l.Cols, i%l.Cols
	return l.BoardX + col*cellWidth, l.BoardY + row*cellHeight
}

// HitTest maps a screen position to the cell under it; gaps and the margin miss
func (l Layout) HitTest(x, y int) (int, bool) {
	if l.Cols <= 0 || l.Rows <= 0 {
		return -1, false
	}
	dx, dy := x-l.BoardX, y-l.BoardY
	if dx < 0 || dy < 0 {
		return -1, false
	}
	col, row := dx/cellWidth, dy/cellHeight
	if col >= l.Cols || row >= l.Rows {
		return -1, false
	}
	if dx%cellWidth >= cellGlyphWidth || dy%cellHeight != 0 {
		return -1, false
	}
	return row*l.Cols + col, true
}
