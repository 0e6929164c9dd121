package battleship

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGameManagerLifecycle(t *testing.T) {
	gm := NewBattleshipGameManager()
	go gm.ManageGameTermination()

	game, err := gm.CreateGame(8, 8)
	require.NoError(t, err)

	found, err := gm.GetGame(game.Uuid())
	require.NoError(t, err)
	require.Same(t, game, found)

	_, err = gm.GetGame("nope42")
	require.Error(t, err)

	gm.TerminateGame(game.Uuid())
	require.Eventually(t, func() bool {
		_, err := gm.GetGame(game.Uuid())
		return err != nil
	}, time.Second, time.Millisecond*10)
}

func TestGameManagerRejectsInvalidDimensions(t *testing.T) {
	gm := NewBattleshipGameManager()

	_, err := gm.CreateGame(0, 8)
	require.Error(t, err)
}
