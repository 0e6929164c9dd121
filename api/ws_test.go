package api_test

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/api"
	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/config"
	mb "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/battleship"
	mc "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/connection"
)

const testWsUrl = "ws://127.0.0.1:7171/battleship"

var dialer = websocket.Dialer{
	HandshakeTimeout: 10 * time.Second,
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			HandshakeTimeoutSeconds: 5,
			ReadBufferSize:          2048,
			WriteBufferSize:         2048,
			SessionCleanupMinutes:   20,
		},
		Game: config.GameConfig{
			DefaultRows:  8,
			DefaultCols:  8,
			MinDimension: 4,
			MaxDimension: 20,
		},
	}
}

func TestMain(m *testing.M) {
	cfg := testConfig()
	logger := zap.NewNop()

	sessionManager := mc.NewBattleshipSessionManager(cfg.Server.SessionCleanupInterval(), logger)
	go sessionManager.CleanupPeriodically()

	gameManager := mb.NewBattleshipGameManager()
	go gameManager.ManageGameTermination()

	// analytics stay nil; the game path must work without a db
	rp := api.NewRequestProcessor(sessionManager, gameManager, nil, cfg, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	go func() {
		if err := http.ListenAndServe("127.0.0.1:7171", mux); err != nil {
			panic(err)
		}
	}()
	time.Sleep(time.Millisecond * 500)

	os.Exit(m.Run())
}

func writeMsg[T any](t *testing.T, conn *websocket.Conn, msg mc.Message[T]) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

func readMsg[T any](t *testing.T, conn *websocket.Conn) mc.Message[T] {
	t.Helper()

	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg mc.Message[T]
	require.NoError(t, json.Unmarshal(payload, &msg))
	return msg
}

// dialSession opens a fresh connection and consumes the initial
// session id message.
func dialSession(t *testing.T) (*websocket.Conn, string) {
	t.Helper()

	conn, _, err := dialer.Dial(testWsUrl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	resp := readMsg[mc.RespSessionId](t, conn)
	require.Equal(t, mc.CodeSessionID, resp.Code)
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.Payload.SessionID)

	return conn, resp.Payload.SessionID
}

func TestWsFullGameFlow(t *testing.T) {
	conn, _ := dialSession(t)

	// new game with explicit dimensions
	newGameReq := mc.NewMessage[mc.ReqNewGame](mc.CodeNewGame)
	newGameReq.AddPayload(mc.ReqNewGame{Rows: 8, Cols: 8})
	writeMsg(t, conn, newGameReq)

	newGameResp := readMsg[mc.RespNewGame](t, conn)
	require.Equal(t, mc.CodeNewGame, newGameResp.Code)
	require.Nil(t, newGameResp.Error)
	require.Equal(t, 8, newGameResp.Payload.Rows)
	require.Equal(t, 8, newGameResp.Payload.Cols)
	require.Equal(t, "Game started!", newGameResp.Payload.Message)
	require.Len(t, newGameResp.Payload.GameUuid, 6)

	// first shot; the board is random so it may hit or miss,
	// either way it counts exactly one turn
	shootReq := mc.NewMessage[mc.ReqShoot](mc.CodeShoot)
	shootReq.AddPayload(mc.ReqShoot{Row: 0, Col: 0})
	writeMsg(t, conn, shootReq)

	shootResp := readMsg[mc.RespShoot](t, conn)
	require.Equal(t, mc.CodeShoot, shootResp.Code)
	require.Nil(t, shootResp.Error)
	require.Equal(t, 0, shootResp.Payload.Row)
	require.Equal(t, 0, shootResp.Payload.Col)
	require.Contains(t, []mb.ShotState{mb.ShotStateMiss, mb.ShotStateHit}, shootResp.Payload.ShotState)
	require.NotEmpty(t, shootResp.Payload.Message)
	require.Equal(t, 1, shootResp.Payload.Stats.Turns)
	require.Equal(t, 1, shootResp.Payload.Stats.Hits+shootResp.Payload.Stats.Misses)
	require.False(t, shootResp.Payload.GameOver)

	// same cell again: turn counts, nothing else changes
	writeMsg(t, conn, shootReq)
	repeatResp := readMsg[mc.RespShoot](t, conn)
	require.Nil(t, repeatResp.Error)
	require.Equal(t, shootResp.Payload.ShotState, repeatResp.Payload.ShotState)
	require.Equal(t, shootResp.Payload.Message, repeatResp.Payload.Message)
	require.Equal(t, 2, repeatResp.Payload.Stats.Turns)
	require.Equal(t, shootResp.Payload.Stats.Hits, repeatResp.Payload.Stats.Hits)

	// stats projection
	writeMsg(t, conn, mc.NewMessage[mc.NoPayload](mc.CodeStats))
	statsResp := readMsg[mc.RespStats](t, conn)
	require.Equal(t, mc.CodeStats, statsResp.Code)
	require.Nil(t, statsResp.Error)
	require.Equal(t, 2, statsResp.Payload.Stats.Turns)
	require.Equal(t, 3, statsResp.Payload.Stats.TotalShips)

	// full render snapshot
	writeMsg(t, conn, mc.NewMessage[mc.NoPayload](mc.CodeGameState))
	stateResp := readMsg[mc.RespGameState](t, conn)
	require.Equal(t, mc.CodeGameState, stateResp.Code)
	require.Nil(t, stateResp.Error)
	require.Equal(t, newGameResp.Payload.GameUuid, stateResp.Payload.GameUuid)
	require.Len(t, stateResp.Payload.Shots, 8)
	require.Len(t, stateResp.Payload.Shots[0], 8)
	require.Len(t, stateResp.Payload.Fleet, 3)
	require.False(t, stateResp.Payload.GameOver)
}

func TestWsNewGameReplacesPreviousGame(t *testing.T) {
	conn, _ := dialSession(t)

	newGameReq := mc.NewMessage[mc.ReqNewGame](mc.CodeNewGame)
	newGameReq.AddPayload(mc.ReqNewGame{Rows: 6, Cols: 6})
	writeMsg(t, conn, newGameReq)
	firstResp := readMsg[mc.RespNewGame](t, conn)
	require.Nil(t, firstResp.Error)

	shootReq := mc.NewMessage[mc.ReqShoot](mc.CodeShoot)
	shootReq.AddPayload(mc.ReqShoot{Row: 2, Col: 3})
	writeMsg(t, conn, shootReq)
	require.Nil(t, readMsg[mc.RespShoot](t, conn).Error)

	// "Play Again": a fresh game, fully re-initialized
	writeMsg(t, conn, newGameReq)
	secondResp := readMsg[mc.RespNewGame](t, conn)
	require.Nil(t, secondResp.Error)
	require.NotEqual(t, firstResp.Payload.GameUuid, secondResp.Payload.GameUuid)

	writeMsg(t, conn, mc.NewMessage[mc.NoPayload](mc.CodeStats))
	statsResp := readMsg[mc.RespStats](t, conn)
	require.Equal(t, 0, statsResp.Payload.Stats.Turns)
	require.Equal(t, 3, statsResp.Payload.Stats.ShipsLeft)
}

func TestWsNewGameUsesConfiguredDefaults(t *testing.T) {
	conn, _ := dialSession(t)

	// empty payload falls back to default_rows/default_cols
	writeMsg(t, conn, mc.NewMessage[mc.ReqNewGame](mc.CodeNewGame))
	resp := readMsg[mc.RespNewGame](t, conn)
	require.Nil(t, resp.Error)
	require.Equal(t, 8, resp.Payload.Rows)
	require.Equal(t, 8, resp.Payload.Cols)
}

func TestWsNewGameRejectsDimensionsOutsideWindow(t *testing.T) {
	conn, _ := dialSession(t)

	for _, dim := range []mc.ReqNewGame{{Rows: 3, Cols: 8}, {Rows: 8, Cols: 25}} {
		req := mc.NewMessage[mc.ReqNewGame](mc.CodeNewGame)
		req.AddPayload(dim)
		writeMsg(t, conn, req)

		resp := readMsg[mc.RespNewGame](t, conn)
		require.Equal(t, mc.CodeNewGame, resp.Code)
		require.NotNil(t, resp.Error)
	}
}

func TestWsShootWithoutGame(t *testing.T) {
	conn, _ := dialSession(t)

	shootReq := mc.NewMessage[mc.ReqShoot](mc.CodeShoot)
	shootReq.AddPayload(mc.ReqShoot{Row: 0, Col: 0})
	writeMsg(t, conn, shootReq)

	resp := readMsg[mc.NoPayload](t, conn)
	require.Equal(t, mc.CodeShoot, resp.Code)
	require.NotNil(t, resp.Error)
}

func TestWsShootOutOfBounds(t *testing.T) {
	conn, _ := dialSession(t)

	newGameReq := mc.NewMessage[mc.ReqNewGame](mc.CodeNewGame)
	newGameReq.AddPayload(mc.ReqNewGame{Rows: 4, Cols: 4})
	writeMsg(t, conn, newGameReq)
	require.Nil(t, readMsg[mc.RespNewGame](t, conn).Error)

	shootReq := mc.NewMessage[mc.ReqShoot](mc.CodeShoot)
	shootReq.AddPayload(mc.ReqShoot{Row: 100, Col: 0})
	writeMsg(t, conn, shootReq)

	resp := readMsg[mc.RespShoot](t, conn)
	require.NotNil(t, resp.Error)

	// a rejected shot never enters the turn ledger
	writeMsg(t, conn, mc.NewMessage[mc.NoPayload](mc.CodeStats))
	statsResp := readMsg[mc.RespStats](t, conn)
	require.Equal(t, 0, statsResp.Payload.Stats.Turns)
}

func TestWsInvalidSignalCode(t *testing.T) {
	conn, _ := dialSession(t)

	writeMsg(t, conn, mc.NewMessage[mc.NoPayload](199))

	resp := readMsg[mc.NoPayload](t, conn)
	require.Equal(t, mc.CodeInvalidSignal, resp.Code)
	require.NotNil(t, resp.Error)
}

func TestWsSignalAbsent(t *testing.T) {
	conn, _ := dialSession(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`"not an object"`)))

	resp := readMsg[mc.NoPayload](t, conn)
	require.Equal(t, mc.CodeSignalAbsent, resp.Code)
	require.NotNil(t, resp.Error)
}

func TestWsReconnectWithUnknownSessionId(t *testing.T) {
	conn, _, err := dialer.Dial(testWsUrl+"?sessionID=bogus", nil)
	require.NoError(t, err)
	defer conn.Close()

	resp := readMsg[mc.NoPayload](t, conn)
	require.Equal(t, mc.CodeReceivedInvalidSessionID, resp.Code)
	require.NotNil(t, resp.Error)
}
