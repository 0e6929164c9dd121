package battleship

import (
	"sync"

	cerr "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/error"
)

type GameManager interface {
	CreateGame(rows, cols int) (*Game, error)
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
	ManageGameTermination()
}

type BattleshipGameManager struct {
	games           map[string]*Game
	terminationChan chan string
	mu              sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

func NewBattleshipGameManager() *BattleshipGameManager {
	return &BattleshipGameManager{
		games:           make(map[string]*Game, 10),
		terminationChan: make(chan string),
	}
}

func (bgm *BattleshipGameManager) CreateGame(rows, cols int) (*Game, error) {
	game, err := NewGame(rows, cols)
	if err != nil {
		return nil, err
	}

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()

	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

// TerminateGame queues a finished or abandoned game for removal.
// Actual deletion happens in ManageGameTermination.
func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.terminationChan <- gameUuid
}

func (bgm *BattleshipGameManager) ManageGameTermination() {
	for {
		gameUuid := <-bgm.terminationChan

		bgm.mu.Lock()
		delete(bgm.games, gameUuid)
		bgm.mu.Unlock()
	}
}
