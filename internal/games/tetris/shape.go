package tetris

// Kind identifies one of the seven piece templates.
type Kind int

const (
	KindT Kind = iota
	KindO
	KindI
	KindS
	KindZ
	KindL
	KindJ
)

// KindCount is the number of piece templates.
const KindCount = 7

// Shape is a rectangular cell matrix describing which cells of a piece's
// bounding box are filled. Every row has the same length; a cell is occupied
// when its value is non-zero.
type Shape [][]int

// templates holds the fixed piece geometry, indexed by Kind.
// Never hand these out directly; use Kind.Shape which returns a copy.
var templates = [KindCount]Shape{
	KindT: {{1, 1, 1}, {0, 1, 0}},
	KindO: {{1, 1}, {1, 1}},
	KindI: {{1, 1, 1, 1}},
	KindS: {{0, 1, 1}, {1, 1, 0}},
	KindZ: {{1, 1, 0}, {0, 1, 1}},
	KindL: {{1, 1, 1}, {1, 0, 0}},
	KindJ: {{1, 1, 1}, {0, 0, 1}},
}

// Shape returns a fresh copy of the template for this kind.
func (k Kind) Shape() Shape {
	return templates[k].Clone()
}

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	switch k {
	case KindT:
		return "T"
	case KindO:
		return "O"
	case KindI:
		return "I"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	default:
		return "?"
	}
}

// Width returns the number of columns in the shape's bounding box.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape's bounding box.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// Rotate returns the shape turned 90 degrees clockwise.
// For an n-row shape, rotated[i][j] = s[n-1-j][i]: reverse the rows, then transpose.
func (s Shape) Rotate() Shape {
	n := s.Height()
	w := s.Width()

	out := make(Shape, w)
	for i := 0; i < w; i++ {
		out[i] = make([]int, n)
		for j := 0; j < n; j++ {
			out[i][j] = s[n-1-j][i]
		}
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// each calls fn for every occupied cell with its row and column inside the shape.
func (s Shape) each(fn func(y, x, value int)) {
	for y, row := range s {
		for x, v := range row {
			if v != 0 {
				fn(y, x, v)
			}
		}
	}
}
