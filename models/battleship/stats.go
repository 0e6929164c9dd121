package battleship

type GameStats struct {
	Turns      int `json:"turns"`
	Hits       int `json:"hits"`
	Misses     int `json:"misses"`
	ShipsLeft  int `json:"ships_left"`
	TotalShips int `json:"total_ships"`
}

// Stats is a pure projection over the current state. It has no
// side effects and may be called at any time, game over included.
func (g *Game) Stats() GameStats {
	hits, misses := 0, 0

	for _, row := range g.shots {
		for _, shot := range row {
			switch shot {
			case ShotStateHit:
				hits++
			case ShotStateMiss:
				misses++
			}
		}
	}

	return GameStats{
		Turns:      g.turns,
		Hits:       hits,
		Misses:     misses,
		ShipsLeft:  g.shipsLeft(),
		TotalShips: len(g.fleet),
	}
}
