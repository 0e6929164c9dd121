package connection

import (
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	gracePeriod       time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one presentation-layer connection. The client keeps
// its session id and may reconnect with it after an abnormal
// closure; the in-memory game survives the grace period.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	logger                 *zap.Logger
	reconnectionSignalChan chan bool
	createdAt              time.Time
}

func NewSession(id string, conn *websocket.Conn, logger *zap.Logger) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		logger:                 logger,
		reconnectionSignalChan: make(chan bool),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		s.logger.Warn("timeout error", zap.Error(err))
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		s.logger.Warn("high server load/traffic error", zap.Error(err))
		return ConnLoopRetry
	}

	// Happens if a browser tab goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		s.logger.Warn("abnormal closure error", zap.Error(err))
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		s.logger.Info("close error", zap.Error(err))
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error("critical error", zap.Error(err))
		return ConnLoopBreak
	}

	// This might mean that the client is not the expected
	// presentation layer. Breaking not to overwhelm the server
	// with invalid payloads (e.g. binary data)
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		s.logger.Warn("non-critical error", zap.Error(err))
		return ConnLoopBreak
	}

	s.logger.Error("unexpected error", zap.Error(err))
	return ConnLoopBreak
}

// Writes to the connection of that session. It also
// handles the abnormal or other types of errors of
// writing to a websocket connection.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8

writeJsonLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if ok {
				err = s.conn.WriteMessage(websocket.TextMessage, respBytes)
			} else {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err != nil {
			switch s.onConnErr(err) {
			case ConnLoopRetry:
				if retries < maxWriteWsRetries {
					retries++
					s.logger.Warn(fmt.Sprintf("writing json failed to ws [%s]; retrying... (retry no. %d)", s.conn.RemoteAddr().String(), retries))
					time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
					continue writeJsonLoop

				} else {
					s.logger.Error(fmt.Sprintf("max retries reached for writing to ws [%s]: %s", s.conn.RemoteAddr().String(), err))
					return NewConnErr(ConnLoopBreak)
				}

			case ConnLoopAbnormalClosureRetry:
				return NewConnErr(ConnLoopAbnormalClosureRetry)

			case ConnLoopBreak:
				return NewConnErr(ConnLoopBreak).AddDesc("breaking writeJsonLoop due to:" + err.Error())
			}
		}
		return nil
	}
}

// Handles the errors that occur when reading from
// the ws connection.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			s.logger.Warn(fmt.Sprintf("failed to read from ws conn [%s]; retrying... (retry no. %d)", s.conn.RemoteAddr().String(), retries))
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue

		} else {
			return ConnLoopBreak
		}

	case ConnLoopBreak:
		s.logger.Warn(fmt.Sprintf("break ws conn loop [%s] due to: %s", s.conn.RemoteAddr().String(), err))
		return ConnLoopBreak

		// will never reach this
	default:
		return ConnLoopBreak
	}
}

func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) {
	// Signal for reconnection
	close(s.reconnectionSignalChan)

	// Setting the new fields for the session
	s.conn = conn
	s.reconnectionSignalChan = make(chan bool)
}

var _ ConnectionHandler = (*Session)(nil)
