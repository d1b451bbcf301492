package tetris

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqChooser returns kinds from a fixed list, cycling when it runs out.
type seqChooser struct {
	kinds []Kind
	i     int
}

func (c *seqChooser) Intn(n int) int {
	k := int(c.kinds[c.i%len(c.kinds)])
	c.i++
	return k % n
}

func newTestEngine(t *testing.T, strict bool, kinds ...Kind) *Engine {
	t.Helper()
	require.NotEmpty(t, kinds)
	return NewEngine(Options{
		StrictRotation: strict,
		Chooser:        &seqChooser{kinds: kinds},
	})
}

// fillRow occupies every cell of row y except the listed columns.
func fillRow(e *Engine, y int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, x := range except {
		skip[x] = true
	}
	for x := 0; x < e.width; x++ {
		if !skip[x] {
			e.grid[y][x] = 1
		}
	}
}

func place(e *Engine, k Kind, row, col int) {
	e.active = Piece{Kind: k, Shape: k.Shape(), Pos: Pos{Row: row, Col: col}}
}

func assertDimensions(t *testing.T, e *Engine) {
	t.Helper()
	grid := e.Grid()
	require.Len(t, grid, DefaultHeight)
	for y, row := range grid {
		require.Len(t, row, DefaultWidth, "row %d", y)
		for x, v := range row {
			require.Contains(t, []int{0, 1}, v, "cell (%d,%d)", y, x)
		}
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine(Options{Seed: 1})

	assert.Equal(t, DefaultWidth, e.Width())
	assert.Equal(t, DefaultHeight, e.Height())
	assert.Zero(t, e.Score())
	assert.False(t, e.GameOver())
	assert.False(t, e.StrictRotation())
	assertDimensions(t, e)

	for _, row := range e.Grid() {
		for _, v := range row {
			assert.Zero(t, v, "grid should start empty")
		}
	}
}

func TestSpawnPosition(t *testing.T) {
	expected := map[Kind]int{
		KindT: 4, // 10/2 - 3/2
		KindO: 4, // 10/2 - 2/2
		KindI: 3, // 10/2 - 4/2
		KindS: 4,
		KindZ: 4,
		KindL: 4,
		KindJ: 4,
	}

	for k, col := range expected {
		t.Run(k.String(), func(t *testing.T) {
			e := newTestEngine(t, false, k)
			active := e.Active()
			assert.Equal(t, k, active.Kind)
			assert.Equal(t, Pos{Row: 0, Col: col}, active.Pos)
			assert.True(t, active.Shape.Equal(k.Shape()))
		})
	}
}

func TestSpawnPositionOddWidthBoard(t *testing.T) {
	e := NewEngine(Options{Width: 9, Chooser: &seqChooser{kinds: []Kind{KindI}}})
	// 9/2 - 4/2 = 2: integer division on both sides, not centered exactly
	assert.Equal(t, Pos{Row: 0, Col: 2}, e.Active().Pos)
}

func TestNextPieceIsIndependentDraw(t *testing.T) {
	e := newTestEngine(t, false, KindT, KindT, KindS)

	// The same kind may be drawn twice in a row
	assert.Equal(t, KindT, e.Active().Kind)
	assert.Equal(t, KindT, e.Next())

	place(e, KindT, 18, 0)
	require.False(t, e.Drop())

	assert.Equal(t, KindT, e.Active().Kind, "next piece is promoted")
	assert.Equal(t, KindS, e.Next(), "a fresh next piece is drawn")
	assert.Equal(t, Pos{Row: 0, Col: 4}, e.Active().Pos, "respawn at the top")
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for k := Kind(0); k < Kind(KindCount); k++ {
		t.Run(k.String(), func(t *testing.T) {
			s := k.Shape()
			r := s
			for i := 0; i < 4; i++ {
				r = r.Rotate()
			}
			assert.True(t, r.Equal(s), "got %v want %v", r, s)
		})
	}
}

func TestRotateClockwise(t *testing.T) {
	assert.Equal(t, Shape{{0, 1}, {1, 1}, {0, 1}}, KindT.Shape().Rotate())
	assert.Equal(t, Shape{{1}, {1}, {1}, {1}}, KindI.Shape().Rotate())
	assert.Equal(t, Shape{{1, 1}, {0, 1}, {0, 1}}, KindL.Shape().Rotate())
}

func TestTemplatesAreImmutable(t *testing.T) {
	s := KindO.Shape()
	s[0][0] = 0
	assert.Equal(t, 1, KindO.Shape()[0][0])

	e := newTestEngine(t, false, KindI)
	a := e.Active()
	a.Shape[0][0] = 0
	assert.Equal(t, 1, e.Active().Shape[0][0], "Active returns a copy")
}

func TestValidMoveBoundary(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	i := KindI.Shape()

	assert.False(t, e.ValidMove(i, Pos{Row: 0, Col: 7}), "rightmost cell at column 10")
	assert.True(t, e.ValidMove(i, Pos{Row: 0, Col: 6}))
	assert.False(t, e.ValidMove(i, Pos{Row: 0, Col: -1}))
	assert.True(t, e.ValidMove(i, Pos{Row: 19, Col: 0}))
	assert.False(t, e.ValidMove(i, Pos{Row: 20, Col: 0}))
}

func TestValidMoveIgnoresEmptyShapeCells(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	s := KindS.Shape() // [[0,1,1],[1,1,0]]

	// Column -1 holds shape cells (0,0), which is empty, and (1,0), which is not
	assert.False(t, e.ValidMove(s, Pos{Row: 0, Col: -1}))

	// Shape cell (0,0) is empty, so an occupied grid cell under it is no collision
	e.grid[10][3] = 1
	assert.True(t, e.ValidMove(s, Pos{Row: 10, Col: 3}))
	e.grid[10][4] = 1
	assert.False(t, e.ValidMove(s, Pos{Row: 10, Col: 3}))
}

func TestCollisionAfterFreeze(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	o := KindO.Shape()

	place(e, KindO, 0, 0)
	e.freeze()

	assert.False(t, e.ValidMove(o, Pos{Row: 0, Col: 0}), "cells are occupied")
	assert.True(t, e.ValidMove(o, Pos{Row: 2, Col: 0}))
	assert.False(t, e.GameOver())
}

func TestMove(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	start := e.Active().Pos

	assert.True(t, e.MoveLeft())
	assert.Equal(t, start.Col-1, e.Active().Pos.Col)
	assert.True(t, e.MoveRight())
	assert.Equal(t, start.Col, e.Active().Pos.Col)

	for e.MoveLeft() {
	}
	assert.Equal(t, 0, e.Active().Pos.Col, "stops at the left wall")
	assert.False(t, e.Move(-1))
	assert.Equal(t, 0, e.Active().Pos.Col, "failed move leaves state unchanged")

	for e.MoveRight() {
	}
	assert.Equal(t, DefaultWidth-2, e.Active().Pos.Col, "stops at the right wall")
}

func TestMoveBlockedByStack(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	place(e, KindO, 5, 4)
	e.grid[5][3] = 1

	assert.False(t, e.MoveLeft())
	assert.True(t, e.MoveRight())
}

func TestDropFallsOneRow(t *testing.T) {
	e := newTestEngine(t, false, KindO)

	assert.True(t, e.SoftDrop())
	assert.Equal(t, 1, e.Active().Pos.Row)
	assert.True(t, e.TickDrop())
	assert.Equal(t, 2, e.Active().Pos.Row)
	assert.Zero(t, e.Pieces())
}

func TestDropLandsAndFreezes(t *testing.T) {
	e := newTestEngine(t, false, KindO)

	drops := 0
	for e.Drop() {
		drops++
	}
	assert.Equal(t, DefaultHeight-2, drops)
	assert.Equal(t, 1, e.Pieces())

	grid := e.Grid()
	assert.Equal(t, 1, grid[18][4])
	assert.Equal(t, 1, grid[18][5])
	assert.Equal(t, 1, grid[19][4])
	assert.Equal(t, 1, grid[19][5])
	assert.Equal(t, Pos{Row: 0, Col: 4}, e.Active().Pos)
}

func TestSingleLineClear(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	fillRow(e, 19, 0, 1)
	place(e, KindO, 18, 0)

	assert.False(t, e.Drop())

	assert.Equal(t, 1, e.Score(), "one row scores 1")
	assert.Equal(t, 1, e.Lines())
	assertDimensions(t, e)

	grid := e.Grid()
	// The top half of the O shifted down into the bottom row
	assert.Equal(t, []int{1, 1, 0, 0, 0, 0, 0, 0, 0, 0}, grid[19])
	for y := 0; y < 19; y++ {
		for _, v := range grid[y] {
			assert.Zero(t, v, "row %d should be empty", y)
		}
	}
}

func TestDoubleLineClearScoresQuadratic(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	fillRow(e, 18, 0, 1)
	fillRow(e, 19, 0, 1)
	place(e, KindO, 18, 0)

	assert.False(t, e.Drop())

	assert.Equal(t, 4, e.Score(), "two rows score 2*2")
	assert.Equal(t, 2, e.Lines())
	assertDimensions(t, e)
	for _, row := range e.Grid() {
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}

func TestClearLinesScoring(t *testing.T) {
	for n := 0; n <= 4; n++ {
		e := newTestEngine(t, false, KindO)
		for y := DefaultHeight - n; y < DefaultHeight; y++ {
			fillRow(e, y)
		}
		require.Equal(t, n, e.clearLines())
		assert.Equal(t, n*n, e.Score(), "%d rows", n)
	}
}

func TestClearLinesNonAdjacentRows(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	fillRow(e, 19)
	e.grid[18][2] = 1 // marker between the full rows
	fillRow(e, 17)
	e.grid[16][7] = 1 // marker above both

	require.Equal(t, 2, e.clearLines())
	assert.Equal(t, 4, e.Score())

	grid := e.Grid()
	assert.Equal(t, 1, grid[19][2], "row between full rows shifts down by one")
	assert.Equal(t, 1, grid[18][7], "row above both full rows shifts down by two")
	assert.Zero(t, grid[17][7])
	assertDimensions(t, e)
}

func TestTopOut(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	e.grid[0][4] = 1 // blocks the O spawn at (0,4)
	place(e, KindO, 18, 0)

	assert.False(t, e.Drop())
	require.True(t, e.GameOver())

	before := e.Grid()
	score := e.Score()
	active := e.Active()

	assert.False(t, e.MoveLeft())
	assert.False(t, e.MoveRight())
	assert.False(t, e.Drop())
	assert.False(t, e.TickDrop())
	e.Rotate()
	e.freeze()

	assert.Equal(t, before, e.Grid(), "no grid mutation after game over")
	assert.Equal(t, score, e.Score())
	assert.Equal(t, active, e.Active())
	assert.True(t, e.GameOver())
}

func TestTopOutByStacking(t *testing.T) {
	e := newTestEngine(t, false, KindO)

	for i := 0; i < 200; i++ {
		if e.GameOver() {
			break
		}
		e.Drop()
	}
	require.True(t, e.GameOver(), "stacking O pieces in one column must top out")
	assert.Equal(t, 10, e.Pieces(), "ten O pieces fill a 20-row column")
	assertDimensions(t, e)
}

func TestUncheckedRotationClips(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	e.active = Piece{Kind: KindI, Shape: KindI.Shape().Rotate(), Pos: Pos{Row: 0, Col: 9}}

	e.Rotate()
	active := e.Active()
	assert.Equal(t, 4, active.Shape.Width(), "rotation applied without a check")
	assert.False(t, e.ValidMove(active.Shape, active.Pos), "piece now overlaps the right wall")

	assert.False(t, e.MoveRight())
	assert.False(t, e.MoveLeft(), "still out of bounds one column to the left")

	// Drop is rejected too, so the piece freezes; cells outside the grid are lost
	assert.False(t, e.Drop())
	assert.Equal(t, 1, e.Pieces())
	grid := e.Grid()
	assert.Equal(t, 1, grid[0][9])
	assertDimensions(t, e)
}

func TestUncheckedRotationIntoStack(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	place(e, KindI, 10, 3)
	e.grid[12][3] = 1

	e.Rotate()
	assert.Equal(t, 1, e.Active().Shape.Width(), "rotation overlaps the stack and is kept")
	assert.False(t, e.ValidMove(e.Active().Shape, e.Active().Pos))
}

func TestStrictRotationReverts(t *testing.T) {
	e := newTestEngine(t, true, KindO)
	require.True(t, e.StrictRotation())

	e.active = Piece{Kind: KindI, Shape: KindI.Shape().Rotate(), Pos: Pos{Row: 0, Col: 9}}
	e.Rotate()
	assert.Equal(t, 1, e.Active().Shape.Width(), "invalid rotation is reverted")

	e.active.Pos = Pos{Row: 5, Col: 3}
	e.Rotate()
	assert.Equal(t, 4, e.Active().Shape.Width(), "valid rotation is applied")
}

func TestEachCell(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	e.grid[19][0] = 1
	place(e, KindO, 0, 4)

	frozen, active := 0, 0
	e.EachCell(func(row, col int, kind CellKind) {
		switch kind {
		case CellFrozen:
			frozen++
			assert.Equal(t, 19, row)
			assert.Equal(t, 0, col)
		case CellActive:
			active++
		}
	})
	assert.Equal(t, 1, frozen)
	assert.Equal(t, 4, active)
}

func TestGridReturnsCopy(t *testing.T) {
	e := newTestEngine(t, false, KindO)
	g := e.Grid()
	g[0][0] = 1
	assert.Zero(t, e.Grid()[0][0])
}

func TestDeterministicSequence(t *testing.T) {
	a := NewEngine(Options{Seed: 42})
	b := NewEngine(Options{Seed: 42})

	for i := 0; i < 200; i++ {
		require.Equal(t, a.Active(), b.Active())
		require.Equal(t, a.Next(), b.Next())
		a.Drop()
		b.Drop()
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := NewEngine(Options{Seed: 99})

	lastScore := 0
	for i := 0; i < 5000; i++ {
		if e.GameOver() {
			break
		}
		switch rng.Intn(5) {
		case 0:
			e.MoveLeft()
		case 1:
			e.MoveRight()
		case 2:
			e.Rotate()
		default:
			e.Drop()
		}

		assertDimensions(t, e)
		require.GreaterOrEqual(t, e.Score(), lastScore, "score never decreases")
		lastScore = e.Score()
	}
}
