package error

import "fmt"

func ErrInvalidGameDimensions(rows, cols int) error {
	return fmt.Errorf("game dimensions must be positive\trows: %d\tcols: %d", rows, cols)
}

func ErrDimensionsOutsideWindow(rows, cols, min, max int) error {
	return fmt.Errorf("game dimensions must be within [%d, %d]\trows: %d\tcols: %d", min, max, rows, cols)
}

func ErrShotOutOfGridBound(row, col int) error {
	return fmt.Errorf("incoming row or col is out of game grid bound\trow: %d\tcol: %d", row, col)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrNoActiveGame(sessionId string) error {
	return fmt.Errorf("no active game for this session, session id: %s", sessionId)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}
