package battleship

// ShipClass describes one entry of the fleet manifest.
type ShipClass struct {
	Name   string
	Length int
}

// FleetManifest returns the fixed ordered list of ships placed
// in every game. Ships are always placed in manifest order.
func FleetManifest() []ShipClass {
	return []ShipClass{
		{Name: "Destroyer", Length: 2},
		{Name: "Cruiser", Length: 3},
		{Name: "Battleship", Length: 4},
	}
}

type Ship struct {
	name      string
	length    int
	positions []Coordinate
	sunk      bool
}

func newShip(class ShipClass, positions []Coordinate) *Ship {
	return &Ship{
		name:      class.Name,
		length:    class.Length,
		positions: positions,
	}
}

func (sh *Ship) Name() string {
	return sh.name
}

func (sh *Ship) Length() int {
	return sh.length
}

// Positions returns a copy so callers cannot alias the
// engine-owned coordinates.
func (sh *Ship) Positions() []Coordinate {
	positions := make([]Coordinate, len(sh.positions))
	copy(positions, sh.positions)
	return positions
}

func (sh *Ship) IsSunk() bool {
	return sh.sunk
}

// ShipStatus is the read-only projection of a ship handed
// to the presentation layer.
type ShipStatus struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
	Sunk   bool   `json:"sunk"`
}
