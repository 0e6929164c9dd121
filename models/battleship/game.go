package battleship

import (
	"fmt"
	"math/rand"
	"time"

	cerr "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/error"

	"github.com/google/uuid"
)

// Game is the whole state of one single-player match. It is
// created fresh by NewGame and replaced wholesale when the
// presentation layer starts a new game; nothing is reset in place.
//
// A Game is owned by exactly one session goroutine and is not
// safe for concurrent use.
type Game struct {
	uuid      string
	rows      int
	cols      int
	board     CellGrid
	shots     ShotGrid
	fleet     []*Ship
	turns     int
	gameOver  bool
	playAgain bool
	message   string
}

type GameOption func(*gameParams)

type gameParams struct {
	rng *rand.Rand
}

// WithRand injects the placement RNG. Tests use it for
// deterministic boards; production relies on the default seeding.
func WithRand(rng *rand.Rand) GameOption {
	return func(p *gameParams) {
		p.rng = rng
	}
}

func NewGame(rows, cols int, opts ...GameOption) (*Game, error) {
	if rows <= 0 || cols <= 0 {
		return nil, cerr.ErrInvalidGameDimensions(rows, cols)
	}

	params := gameParams{}
	for _, opt := range opts {
		opt(&params)
	}
	if params.rng == nil {
		params.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	board, fleet, err := placeFleet(rows, cols, FleetManifest(), params.rng)
	if err != nil {
		return nil, err
	}

	return &Game{
		uuid:    uuid.NewString()[:6],
		rows:    rows,
		cols:    cols,
		board:   board,
		shots:   NewShotGrid(rows, cols),
		fleet:   fleet,
		message: "Game started!",
	}, nil
}

// Shoot resolves one shot at the given zero-based coordinates.
//
// Every in-bounds call counts as a turn, including shots after the
// game is over and shots at already-targeted cells; those are
// otherwise silent no-ops, matching how the board buttons behave.
// Out-of-bounds coordinates are a caller contract violation and
// return an error without touching any state, turn counter included.
func (g *Game) Shoot(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return cerr.ErrShotOutOfGridBound(row, col)
	}

	g.turns++

	if g.gameOver || g.shots[row][col] != ShotStateUntargeted {
		return nil
	}

	shipIdx := g.board[row][col]
	if shipIdx == CellEmpty {
		g.shots[row][col] = ShotStateMiss
		g.message = fmt.Sprintf("Miss at (%d, %d)!", row+1, col+1)
	} else {
		g.shots[row][col] = ShotStateHit
		g.message = fmt.Sprintf("Hit at (%d, %d)!", row+1, col+1)

		ship := g.fleet[shipIdx]
		if g.allPositionsHit(ship) {
			ship.sunk = true
			g.message = fmt.Sprintf("You sunk the %s!", ship.name)
		}
	}

	if g.shipsLeft() == 0 {
		g.gameOver = true
		g.playAgain = true
		g.message = "Congratulations! You sunk all the ships!"
	}

	return nil
}

func (g *Game) allPositionsHit(ship *Ship) bool {
	for _, pos := range ship.positions {
		if g.shots[pos.Row][pos.Col] != ShotStateHit {
			return false
		}
	}
	return true
}

func (g *Game) shipsLeft() int {
	left := 0
	for _, ship := range g.fleet {
		if !ship.sunk {
			left++
		}
	}
	return left
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Rows() int {
	return g.rows
}

func (g *Game) Cols() int {
	return g.cols
}

func (g *Game) Turns() int {
	return g.turns
}

func (g *Game) IsOver() bool {
	return g.gameOver
}

func (g *Game) PlayAgain() bool {
	return g.playAgain
}

func (g *Game) Message() string {
	return g.message
}

func (g *Game) Fleet() []*Ship {
	return g.fleet
}

func (g *Game) ShotAt(row, col int) (ShotState, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return ShotStateUntargeted, cerr.ErrShotOutOfGridBound(row, col)
	}
	return g.shots[row][col], nil
}

// ShotGridSnapshot copies the full shot history so a reconnecting
// presentation layer can redraw the board from scratch.
func (g *Game) ShotGridSnapshot() ShotGrid {
	snapshot := NewShotGrid(g.rows, g.cols)
	for r := range g.shots {
		copy(snapshot[r], g.shots[r])
	}
	return snapshot
}

func (g *Game) FleetStatus() []ShipStatus {
	status := make([]ShipStatus, len(g.fleet))
	for i, ship := range g.fleet {
		status[i] = ShipStatus{Name: ship.name, Length: ship.length, Sunk: ship.sunk}
	}
	return status
}
