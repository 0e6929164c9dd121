package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"
	"go.uber.org/zap"

	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/db/sqlc"
	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/config"
	cerr "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/error"
	mb "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/battleship"
	mc "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

// RequestProcessor is the websocket boundary between the
// presentation layer and the game engine. One connection is one
// session; every engine call for that session happens inside its
// session loop, so each game has exactly one logical actor.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	cfg            *config.Config
	logger         *zap.Logger
	upgrader       websocket.Upgrader
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
	cfg *config.Config,
	logger *zap.Logger,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		cfg:            cfg,
		logger:         logger,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: cfg.Server.HandshakeTimeout(),
			ReadBufferSize:   cfg.Server.ReadBufferSize,
			WriteBufferSize:  cfg.Server.WriteBufferSize,
			CheckOrigin:      func(r *http.Request) bool { return true },
		},
	}

	// The server ip only keys the analytics rows; without a
	// database there is no reason to require a resolvable interface
	if analytics != nil {
		rp = rp.mustGetServerIpNet()
	}
	return rp
}

func (rp RequestProcessor) mustGetServerIpNet() RequestProcessor {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		// If the flag is down
		if iface.Flags&net.FlagUp == 0 {
			continue
		}

		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			panic(err)
		}

		for _, addr := range addrs {
			var ipnet *net.IPNet
			var ip net.IP

			switch v := addr.(type) {
			case *net.IPNet:
				ipnet = v
				ip = v.IP

			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				rp.ipnet = *ipnet
				return rp
			}
		}
	}

	panic("ipnet could not be found!")
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		rp.logger.Warn("could not open websocket connection", zap.Error(err))
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		rp.logger.Info(fmt.Sprintf("a new connection established\tRemote Addr: %s", conn.RemoteAddr().String()))
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			rp.logger.Warn("reconnection with unknown session id", zap.String("sessionId", sessionIdQuery))

			resp := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
			resp.AddError(err.Error(), "session expired; connect again without a session id")
			_ = conn.WriteJSON(resp)
			conn.Close()
		}
	}
}

// analyticsIncrement runs one analytics counter update, if a
// database is wired in at all. Analytics never fail the game path.
func (rp *RequestProcessor) analyticsIncrement(increment func(context.Context, pqtype.Inet) error) {
	if rp.analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	serverPqtypeInet := pqtype.Inet{IPNet: rp.ipnet, Valid: true}
	if err := increment(ctx, serverPqtypeInet); err != nil {
		// for now not killing the game for it
		rp.logger.Warn("analytics update failed", zap.Error(err))
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var (
		sessionGame *mb.Game
		sessionId   = session.Id()
	)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if session != nil && session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// This error happens after retries. If it's not nil,
			// then something was wrong with the session connection
			// and couldn't be resolved
			break sessionLoop
		}

		var signal mc.Signal

		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch signal.Code {

		// A fresh game for this session. The previous game, if
		// any, is discarded wholesale; this is also the "Play
		// Again" path since restarts are always caller-initiated.
		case mc.CodeNewGame:
			game, respMsg := NewRequest(payload).HandleNewGame(rp.gameManager, rp.cfg.Game)

			if game != nil {
				rp.analyticsIncrement(rp.analytics.IncrementGamesCreatedCount)

				if sessionGame != nil {
					rp.gameManager.TerminateGame(sessionGame.Uuid())
				}
				sessionGame = game
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeShoot:
			if sessionGame == nil {
				if err := rp.writeNoActiveGame(session, mc.CodeShoot, sessionId); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest(payload).HandleShoot(sessionGame)

			if respMsg.Error == nil {
				rp.analyticsIncrement(rp.analytics.IncrementShotsFiredCount)

				if respMsg.Payload.GameOver {
					rp.analyticsIncrement(rp.analytics.IncrementGamesCompletedCount)
				}
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeGameState:
			if sessionGame == nil {
				if err := rp.writeNoActiveGame(session, mc.CodeGameState, sessionId); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest().HandleGameState(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		case mc.CodeStats:
			if sessionGame == nil {
				if err := rp.writeNoActiveGame(session, mc.CodeStats, sessionId); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			respMsg := NewRequest().HandleStats(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp *RequestProcessor) writeNoActiveGame(session *mc.Session, code uint8, sessionId string) error {
	msg := mc.NewMessage[mc.NoPayload](code)
	msg.AddError(cerr.ErrNoActiveGame(sessionId).Error(), "start a new game first")
	return rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON)
}
