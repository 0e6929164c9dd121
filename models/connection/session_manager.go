package connection

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	cerr "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically()

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	logger          *zap.Logger
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager(cleanupInterval time.Duration, logger *zap.Logger) *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: cleanupInterval,
		logger:          logger,
	}
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))

	bsm.mu.Lock()
	bsm.sessions[sessionId] = NewSession(sessionId, conn, bsm.logger)
	session := bsm.sessions[sessionId]
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

// ReconnectSession swaps the connection of an existing session
// and unblocks its grace-period wait. The session goroutine
// keeps running with its game intact.
func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}

	session.reconnectionAfterAbnormalClosure(conn)
	return nil
}

// To ensure that there are no dangling connections, the session
// manager marks sessions older than the cleanup interval as
// stale and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically() {
	assumedClosedConns := 10

	for {
		time.Sleep(bsm.cleanupInterval)

		bsm.mu.Lock()
		toDelete := make([]string, 0, assumedClosedConns)

		for ID, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.cleanupInterval {
				toDelete = append(toDelete, ID)
			}
		}

		bsm.logger.Info("cleaning up sessions")
		for _, ID := range toDelete {
			delete(bsm.sessions, ID)
			bsm.logger.Info(fmt.Sprintf("removed: %s", ID))
		}
		bsm.mu.Unlock()
	}
}

// HandleAbnormalClosureSession keeps a session alive through a
// grace period after an abnormal closure. If the client comes
// back with its session id in time, play continues on the same
// game; otherwise the session loop is told to break.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	timer := time.NewTimer(gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		bsm.logger.Info(fmt.Sprintf("session terminated: %s", s.id))
		return NewConnErr(ConnLoopBreak).AddDesc("grace period is over for session: " + s.id)

	case <-s.reconnectionSignalChan:
		bsm.logger.Info(fmt.Sprintf("player reconnected, session: %s", s.id))
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)

	if err != nil {
		connErr, ok := err.(ConnErr)
		if !ok {
			panic("this will never happen")
		}

		switch connErr.Code() {
		case ConnLoopBreak, ConnInvalidMsgType:
			return connErr

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return connErr
			}
		}
	}

	return nil
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}
