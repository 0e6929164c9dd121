package battleship

// CellEmpty marks a water cell in the board grid. Any
// other value is the index of the ship occupying the cell.
const CellEmpty int = -1

type ShotState uint8

const (
	ShotStateUntargeted ShotState = iota
	ShotStateMiss
	ShotStateHit
)

type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// CellGrid holds the ship placement. It is written once
// during fleet placement and never mutated during play.
type CellGrid [][]int

func NewCellGrid(rows, cols int) CellGrid {
	grid := make(CellGrid, rows)

	for r := 0; r < rows; r++ {
		grid[r] = make([]int, cols)
		for c := 0; c < cols; c++ {
			grid[r][c] = CellEmpty
		}
	}
	return grid
}

// ShotGrid holds the shot history. Each position is
// written at most once; ShotStateUntargeted is the zero value.
type ShotGrid [][]ShotState

func NewShotGrid(rows, cols int) ShotGrid {
	grid := make(ShotGrid, rows)

	for r := 0; r < rows; r++ {
		grid[r] = make([]ShotState, cols)
	}
	return grid
}
