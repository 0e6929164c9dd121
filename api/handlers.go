package api

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"

	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/config"
	cerr "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/error"
	mb "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/battleship"
	mc "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/connection"
)

const (
	constErrNewGameFailed = "new game operation failed"
	constErrShootFailed   = "shoot operation failed"
)

// Every incoming valid request has this structure. The raw
// payload is kept as bytes; each handler decodes the part it needs.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	req := Request{}
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// decode unmarshals the message envelope and maps the loosely
// typed payload onto the request struct.
func (r Request) decode(dst interface{}) error {
	var msg mc.Message[map[string]interface{}]
	if err := json.Unmarshal(r.payload, &msg); err != nil {
		return err
	}
	return mapstructure.Decode(msg.Payload, dst)
}

// HandleNewGame builds a fresh game for the session, replacing
// whatever game it had before. Missing dimensions fall back to
// the configured defaults; dimensions outside the widget window
// are rejected here before they reach the engine.
func (r Request) HandleNewGame(gameManager mb.GameManager, gameCfg config.GameConfig) (*mb.Game, mc.Message[mc.RespNewGame]) {
	resp := mc.NewMessage[mc.RespNewGame](mc.CodeNewGame)

	var req mc.ReqNewGame
	if err := r.decode(&req); err != nil {
		resp.AddError(err.Error(), constErrNewGameFailed)
		return nil, resp
	}

	if req.Rows == 0 {
		req.Rows = gameCfg.DefaultRows
	}
	if req.Cols == 0 {
		req.Cols = gameCfg.DefaultCols
	}

	if !gameCfg.DimensionInWindow(req.Rows) || !gameCfg.DimensionInWindow(req.Cols) {
		err := cerr.ErrDimensionsOutsideWindow(req.Rows, req.Cols, gameCfg.MinDimension, gameCfg.MaxDimension)
		resp.AddError(err.Error(), constErrNewGameFailed)
		return nil, resp
	}

	game, err := gameManager.CreateGame(req.Rows, req.Cols)
	if err != nil {
		resp.AddError(err.Error(), constErrNewGameFailed)
		return nil, resp
	}

	resp.AddPayload(mc.RespNewGame{
		GameUuid: game.Uuid(),
		Rows:     game.Rows(),
		Cols:     game.Cols(),
		Message:  game.Message(),
	})
	return game, resp
}

func (r Request) HandleShoot(game *mb.Game) mc.Message[mc.RespShoot] {
	resp := mc.NewMessage[mc.RespShoot](mc.CodeShoot)

	var req mc.ReqShoot
	if err := r.decode(&req); err != nil {
		resp.AddError(err.Error(), constErrShootFailed)
		return resp
	}

	fleetBefore := game.FleetStatus()

	if err := game.Shoot(req.Row, req.Col); err != nil {
		resp.AddError(err.Error(), constErrShootFailed)
		return resp
	}

	shotState, _ := game.ShotAt(req.Row, req.Col)
	payload := mc.RespShoot{
		Row:       req.Row,
		Col:       req.Col,
		ShotState: shotState,
		Message:   game.Message(),
		GameOver:  game.IsOver(),
		PlayAgain: game.PlayAgain(),
		Stats:     game.Stats(),
	}

	for i, status := range game.FleetStatus() {
		if status.Sunk && !fleetBefore[i].Sunk {
			payload.SunkShip = status.Name
		}
	}

	resp.AddPayload(payload)
	return resp
}

func (r Request) HandleGameState(game *mb.Game) mc.Message[mc.RespGameState] {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeGameState)
	resp.AddPayload(mc.RespGameState{
		GameUuid:  game.Uuid(),
		Rows:      game.Rows(),
		Cols:      game.Cols(),
		Shots:     game.ShotGridSnapshot(),
		Fleet:     game.FleetStatus(),
		Message:   game.Message(),
		GameOver:  game.IsOver(),
		PlayAgain: game.PlayAgain(),
		Stats:     game.Stats(),
	})
	return resp
}

func (r Request) HandleStats(game *mb.Game) mc.Message[mc.RespStats] {
	resp := mc.NewMessage[mc.RespStats](mc.CodeStats)
	resp.AddPayload(mc.RespStats{Stats: game.Stats()})
	return resp
}
