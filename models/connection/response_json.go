package connection

import (
	mb "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespNewGame struct {
	GameUuid string `json:"game_uuid"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Message  string `json:"message"`
}

type RespShoot struct {
	Row       int          `json:"row"`
	Col       int          `json:"col"`
	ShotState mb.ShotState `json:"shot_state"`
	Message   string       `json:"message"`
	GameOver  bool         `json:"game_over"`
	PlayAgain bool         `json:"play_again"`
	SunkShip  string       `json:"sunk_ship,omitempty"`
	Stats     mb.GameStats `json:"stats"`
}

// RespGameState carries everything the presentation layer needs
// to redraw one render frame.
type RespGameState struct {
	GameUuid  string          `json:"game_uuid"`
	Rows      int             `json:"rows"`
	Cols      int             `json:"cols"`
	Shots     mb.ShotGrid     `json:"shots"`
	Fleet     []mb.ShipStatus `json:"fleet"`
	Message   string          `json:"message"`
	GameOver  bool            `json:"game_over"`
	PlayAgain bool            `json:"play_again"`
	Stats     mb.GameStats    `json:"stats"`
}

type RespStats struct {
	Stats mb.GameStats `json:"stats"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
