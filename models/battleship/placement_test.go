package battleship

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceFleetProperties(t *testing.T) {
	dimensions := []struct {
		rows int
		cols int
	}{
		{4, 4},
		{4, 20},
		{8, 8},
		{20, 4},
		{20, 20},
	}

	for _, dim := range dimensions {
		for seed := int64(0); seed < 25; seed++ {
			rng := rand.New(rand.NewSource(seed))

			board, fleet, err := placeFleet(dim.rows, dim.cols, FleetManifest(), rng)
			require.NoError(t, err)
			require.Len(t, fleet, 3)

			// board cells and ship positions must agree exactly
			occupied := make(map[Coordinate]int)
			for shipIdx, ship := range fleet {
				require.Equal(t, FleetManifest()[shipIdx].Name, ship.Name())
				require.Len(t, ship.Positions(), ship.Length())
				require.False(t, ship.IsSunk())

				for _, pos := range ship.Positions() {
					require.GreaterOrEqual(t, pos.Row, 0)
					require.GreaterOrEqual(t, pos.Col, 0)
					require.Less(t, pos.Row, dim.rows)
					require.Less(t, pos.Col, dim.cols)

					_, taken := occupied[pos]
					require.False(t, taken, "two ships share coordinate %+v", pos)
					occupied[pos] = shipIdx

					require.Equal(t, shipIdx, board[pos.Row][pos.Col])
				}
			}

			// 2 + 3 + 4 cells, nothing more
			require.Len(t, occupied, 9)

			emptyCells := 0
			for r := 0; r < dim.rows; r++ {
				for c := 0; c < dim.cols; c++ {
					if board[r][c] == CellEmpty {
						emptyCells++
					}
				}
			}
			require.Equal(t, dim.rows*dim.cols-9, emptyCells)
		}
	}
}

func TestPlaceFleetShipsAreStraightLines(t *testing.T) {
	rng := rand.New(rand.NewSource(13))

	_, fleet, err := placeFleet(6, 6, FleetManifest(), rng)
	require.NoError(t, err)

	for _, ship := range fleet {
		positions := ship.Positions()
		anchor := positions[0]

		horizontal := true
		vertical := true
		for i, pos := range positions {
			if pos.Row != anchor.Row || pos.Col != anchor.Col+i {
				horizontal = false
			}
			if pos.Col != anchor.Col || pos.Row != anchor.Row+i {
				vertical = false
			}
		}
		require.True(t, horizontal || vertical, "%s is not a straight line: %+v", ship.Name(), positions)
	}
}

func TestPlaceFleetDeterministicWithSeed(t *testing.T) {
	boardA, _, err := placeFleet(8, 8, FleetManifest(), rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	boardB, _, err := placeFleet(8, 8, FleetManifest(), rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	require.Equal(t, boardA, boardB)
}

func TestPlaceFleetGridTooSmall(t *testing.T) {
	// a 3x3 grid can never hold the length-4 Battleship
	rng := rand.New(rand.NewSource(1))

	_, _, err := placeFleet(3, 3, FleetManifest(), rng)
	require.Error(t, err)

	var placementErr *PlacementError
	require.ErrorAs(t, err, &placementErr)
	require.Equal(t, "Battleship", placementErr.ShipName)
	require.Equal(t, 3, placementErr.Rows)
	require.Equal(t, 3, placementErr.Cols)
}
