package battleship

import (
	"fmt"
	"math/rand"
)

// Cap on rejection-sampling attempts per ship. Without it a grid
// too small for the manifest would spin the placement loop forever.
const maxPlacementAttempts = 10_000

type PlacementError struct {
	Rows     int
	Cols     int
	ShipName string
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("failed to place %s on %dx%d grid after %d attempts", e.ShipName, e.Rows, e.Cols, e.Attempts)
}

// placeFleet places every manifest ship on a fresh grid by rejection
// sampling: uniform random orientation and anchor, candidate rejected
// if any cell falls out of bounds or on an earlier ship. Ships are
// placed sequentially in manifest order with no backtracking.
func placeFleet(rows, cols int, manifest []ShipClass, rng *rand.Rand) (CellGrid, []*Ship, error) {
	board := NewCellGrid(rows, cols)
	fleet := make([]*Ship, 0, len(manifest))

	for shipIdx, class := range manifest {
		placed := false

	placementLoop:
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			horizontal := rng.Intn(2) == 0
			row, col := rng.Intn(rows), rng.Intn(cols)

			positions := make([]Coordinate, 0, class.Length)
			for i := 0; i < class.Length; i++ {
				r, c := row+i, col
				if horizontal {
					r, c = row, col+i
				}

				if r >= rows || c >= cols {
					continue placementLoop
				}
				if board[r][c] != CellEmpty {
					continue placementLoop
				}
				positions = append(positions, NewCoordinate(r, c))
			}

			for _, pos := range positions {
				board[pos.Row][pos.Col] = shipIdx
			}
			fleet = append(fleet, newShip(class, positions))
			placed = true
			break placementLoop
		}

		if !placed {
			return nil, nil, &PlacementError{
				Rows:     rows,
				Cols:     cols,
				ShipName: class.Name,
				Attempts: maxPlacementAttempts,
			}
		}
	}

	return board, fleet, nil
}
