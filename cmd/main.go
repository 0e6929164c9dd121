package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/api"
	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/db"
	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/db/sqlc"
	"github.com/matwjablonski/copilot-hackathon-battleship-game-engine/internal/config"
	mb "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/battleship"
	mc "github.com/matwjablonski/copilot-hackathon-battleship-game-engine/models/connection"
)

func main() {
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != "dev" && stage != "prod" {
		panic("stage must be either dev or prod")
	}
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	// Without DATABASE_URL the server runs standalone with
	// analytics disabled; the game itself never touches the db
	var analytics *sqlc.AnalyticsManager
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		dbManager := sqlc.NewDbManager(sqlc.New(db.MustConnectToDb(psqlUrl)))
		analytics = dbManager.Analytics
	} else {
		logger.Warn("DATABASE_URL not set; analytics disabled")
	}

	sessionManager := mc.NewBattleshipSessionManager(cfg.Server.SessionCleanupInterval(), logger)
	go sessionManager.CleanupPeriodically()

	gameManager := mb.NewBattleshipGameManager()
	go gameManager.ManageGameTermination()

	rp := api.NewRequestProcessor(sessionManager, gameManager, analytics, cfg, logger)

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logger.Info(fmt.Sprintf("Listening to port %d", port))
	log.Fatalln(http.ListenAndServe("0.0.0.0:"+fmt.Sprintf("%d", port), mux))
}
