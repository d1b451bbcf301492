package tetris

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lines    int
	Pieces   int
	Active   Kind
	Pos      Pos
	Next     Kind
	Stack    int // Number of occupied grid cells
	GameOver bool
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	e := g.engine
	stack := 0
	e.EachCell(func(_, _ int, kind CellKind) {
		if kind == CellFrozen {
			stack++
		}
	})

	return Snapshot{
		Tick:     g.tick,
		Score:    e.Score(),
		Lines:    e.Lines(),
		Pieces:   e.Pieces(),
		Active:   e.active.Kind,
		Pos:      e.active.Pos,
		Next:     e.next,
		Stack:    stack,
		GameOver: e.GameOver(),
		Paused:   g.paused,
	}
}
