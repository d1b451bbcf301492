// Package tetris implements the falling-block puzzle: a pure game-state
// engine (grid, pieces, collision, line clearing, scoring) and the
// adapter that drives it from platform ticks and draws it to a screen buffer.
package tetris

import (
	"math/rand"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Chooser picks a uniform random integer in [0, n).
// *rand.Rand satisfies it; tests plug in fixed sequences.
type Chooser interface {
	Intn(n int) int
}

// Pos is the grid position of a piece's bounding box top-left corner.
type Pos struct {
	Row, Col int
}

// Piece is the active falling shape and where it sits on the grid.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   Pos
}

// CellKind tags a cell yielded by Engine.EachCell.
type CellKind int

const (
	CellFrozen CellKind = iota // Part of the settled stack
	CellActive                 // Part of the falling piece
)

// Options configures a new engine. Zero values fall back to defaults.
type Options struct {
	Width  int
	Height int

	// StrictRotation reverts a rotation that leaves the piece overlapping
	// a wall, the floor or the stack. Off by default: rotation is applied
	// unchecked and the piece may sit clipped until the next move or drop.
	StrictRotation bool

	// Chooser draws piece kinds. Defaults to a math/rand source seeded with Seed.
	Chooser Chooser
	Seed    int64
}

// Engine is the game state machine over a fixed grid plus one falling piece.
// It is single-threaded: callers must not use it from more than one goroutine.
type Engine struct {
	width  int
	height int
	strict bool
	rng    Chooser

	grid   [][]int
	active Piece
	next   Kind

	score    int
	lines    int
	pieces   int
	gameOver bool
}

// NewEngine creates an engine with an empty grid, a random active piece at
// its spawn position and an independently drawn next piece.
func NewEngine(opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Chooser == nil {
		opts.Chooser = rand.New(rand.NewSource(opts.Seed))
	}

	e := &Engine{
		width:  opts.Width,
		height: opts.Height,
		strict: opts.StrictRotation,
		rng:    opts.Chooser,
		grid:   newGrid(opts.Width, opts.Height),
	}

	e.active = e.spawn(e.draw())
	e.next = e.draw()
	return e
}

func newGrid(width, height int) [][]int {
	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
	}
	return grid
}

// draw picks the next piece kind uniformly.
func (e *Engine) draw() Kind {
	return Kind(e.rng.Intn(KindCount))
}

// spawn builds a piece of the given kind at row 0, horizontally centered
// using integer division on both the board and the shape width.
func (e *Engine) spawn(k Kind) Piece {
	shape := k.Shape()
	return Piece{
		Kind:  k,
		Shape: shape,
		Pos:   Pos{Row: 0, Col: e.width/2 - shape.Width()/2},
	}
}

// ValidMove reports whether shape fits at pos: every occupied cell must be
// inside the side walls, above the floor and on an empty grid cell.
func (e *Engine) ValidMove(shape Shape, pos Pos) bool {
	valid := true
	shape.each(func(y, x, _ int) {
		if !valid {
			return
		}
		row, col := y+pos.Row, x+pos.Col
		if col < 0 || col >= e.width || row >= e.height {
			valid = false
			return
		}
		if row < 0 || e.grid[row][col] != 0 {
			valid = false
		}
	})
	return valid
}

// Rotate turns the active piece 90 degrees clockwise.
// Without strict rotation the result is not checked against the grid.
func (e *Engine) Rotate() {
	if e.gameOver {
		return
	}
	rotated := e.active.Shape.Rotate()
	if e.strict && !e.ValidMove(rotated, e.active.Pos) {
		return
	}
	e.active.Shape = rotated
}

// Move shifts the active piece dx columns if the target position is valid.
func (e *Engine) Move(dx int) bool {
	if e.gameOver {
		return false
	}
	target := Pos{Row: e.active.Pos.Row, Col: e.active.Pos.Col + dx}
	if !e.ValidMove(e.active.Shape, target) {
		return false
	}
	e.active.Pos = target
	return true
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool { return e.Move(-1) }

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool { return e.Move(1) }

// Drop moves the active piece down one row. When it cannot fall any further
// the piece is frozen into the grid and Drop returns false.
func (e *Engine) Drop() bool {
	if e.gameOver {
		return false
	}
	target := Pos{Row: e.active.Pos.Row + 1, Col: e.active.Pos.Col}
	if !e.ValidMove(e.active.Shape, target) {
		e.freeze()
		return false
	}
	e.active.Pos = target
	return true
}

// SoftDrop is the player's down command.
func (e *Engine) SoftDrop() bool { return e.Drop() }

// TickDrop is the timer's gravity step; it behaves exactly like SoftDrop.
func (e *Engine) TickDrop() bool { return e.Drop() }

// freeze writes the active piece into the grid, clears full rows and spawns
// the next piece. If the new piece does not fit, the game is over.
func (e *Engine) freeze() {
	if e.gameOver {
		return
	}
	pos := e.active.Pos
	e.active.Shape.each(func(y, x, v int) {
		row, col := y+pos.Row, x+pos.Col
		// A clipped piece can stick out of the grid; those cells are lost.
		if row < 0 || row >= e.height || col < 0 || col >= e.width {
			return
		}
		e.grid[row][col] = v
	})
	e.pieces++

	e.clearLines()

	e.active = e.spawn(e.next)
	e.next = e.draw()

	if !e.ValidMove(e.active.Shape, e.active.Pos) {
		e.gameOver = true
	}
}

// clearLines removes every full row in a single bottom-up compaction pass,
// inserts the same number of empty rows at the top and adds n*n to the score.
// It returns the number of rows removed.
func (e *Engine) clearLines() int {
	kept := make([][]int, 0, e.height)
	for y := e.height - 1; y >= 0; y-- {
		if !rowFull(e.grid[y]) {
			kept = append(kept, e.grid[y])
		}
	}

	n := e.height - len(kept)
	if n == 0 {
		return 0
	}

	rows := make([][]int, e.height)
	for y := 0; y < n; y++ {
		rows[y] = make([]int, e.width)
	}
	for i, row := range kept {
		rows[e.height-1-i] = row
	}
	e.grid = rows

	e.score += n * n
	e.lines += n
	return n
}

func rowFull(row []int) bool {
	for _, v := range row {
		if v == 0 {
			return false
		}
	}
	return true
}

// Width returns the number of grid columns.
func (e *Engine) Width() int { return e.width }

// Height returns the number of grid rows.
func (e *Engine) Height() int { return e.height }

// Score returns the accumulated score.
func (e *Engine) Score() int { return e.score }

// Lines returns the total number of rows cleared.
func (e *Engine) Lines() int { return e.lines }

// Pieces returns how many pieces have been frozen into the grid.
func (e *Engine) Pieces() int { return e.pieces }

// GameOver reports whether a spawned piece has topped out.
func (e *Engine) GameOver() bool { return e.gameOver }

// StrictRotation reports whether invalid rotations are reverted.
func (e *Engine) StrictRotation() bool { return e.strict }

// Grid returns a copy of the grid, row 0 first.
func (e *Engine) Grid() [][]int {
	out := make([][]int, e.height)
	for y, row := range e.grid {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Active returns a copy of the falling piece.
func (e *Engine) Active() Piece {
	p := e.active
	p.Shape = p.Shape.Clone()
	return p
}

// Next returns the kind of the piece that spawns after the active one freezes.
func (e *Engine) Next() Kind { return e.next }

// EachCell calls fn for every occupied cell: first the frozen grid, then the
// active piece. Active cells outside the grid are skipped.
func (e *Engine) EachCell(fn func(row, col int, kind CellKind)) {
	for y, row := range e.grid {
		for x, v := range row {
			if v != 0 {
				fn(y, x, CellFrozen)
			}
		}
	}
	pos := e.active.Pos
	e.active.Shape.each(func(y, x, _ int) {
		row, col := y+pos.Row, x+pos.Col
		if row < 0 || row >= e.height || col < 0 || col >= e.width {
			return
		}
		fn(row, col, CellActive)
	})
}
